package config

import "github.com/spf13/viper"

func FromViper(v *viper.Viper) (*Config, error) { return fromViper(v) }
