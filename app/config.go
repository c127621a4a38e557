package app

import (
	"github.com/spf13/viper"

	"github.com/DavidABliss/directory-report-generator/models"
)

func LoadConfig(path string) (*models.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg models.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
