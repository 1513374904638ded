package models

import (
	"errors"

	"x-scraper-go/models/cookiejar"

	"github.com/spf13/viper"
)

type Twitter struct {
	BearerToken string                    `mapstructure:"bearerToken"`
	GuestToken  string                    `mapstructure:"guestToken"`
	UserAgent   string                    `mapstructure:"userAgent"`
	Cookies     []cookiejar.CookieEntries `mapstructure:"cookies"`
}

type ScraperSetting struct {
	Proxy          string `mapstructure:"proxy"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

type Configuration struct {
	Twitter *Twitter        `mapstructure:"twitter"`
	Scraper *ScraperSetting `mapstructure:"scraper"`
	viper   *viper.Viper
}

func NewConfiguration() (*Configuration, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.SetDefault("twitter",
		&Twitter{
			Cookies: make([]cookiejar.CookieEntries, 0),
		},
	)
	v.SetDefault("scraper",
		&ScraperSetting{
			Proxy:          "",
			TimeoutSeconds: 30,
		})
	err := v.SafeWriteConfig()
	if err != nil {
		var configFileAlreadyExistsError viper.ConfigFileAlreadyExistsError
		if !errors.As(err, &configFileAlreadyExistsError) {
			return nil, err
		}
	}
	err = v.ReadInConfig()
	if err != nil {
		return nil, err
	}
	var configuration *Configuration
	err = v.Unmarshal(&configuration)
	if err != nil {
		return nil, err
	}
	configuration.viper = v
	return configuration, nil
}

func (c *Configuration) Save() error {
	c.viper.Set("twitter", &c.Twitter)
	err := c.viper.WriteConfig()
	if err != nil {
		return err
	}
	return nil
}
