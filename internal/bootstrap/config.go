package bootstrap

import (
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort       string  `mapstructure:"SERVER_PORT"`
	RedisUrl         string  `mapstructure:"REDIS_URL"`
	MongoUri         string  `mapstructure:"MONGO_URI"`
	IsLocalCors      bool    `mapstructure:"LOCAL_CORS"`
	KatagoBinary     string  `mapstructure:"KATAGO_BINARY"`
	KatagoModel      string  `mapstructure:"KATAGO_MODEL"`
	KatagoConfig     string  `mapstructure:"KATAGO_CONFIG"`
	LlmApiKey        string  `mapstructure:"LLM_API_KEY"`
	LlmAgentKey      string  `mapstructure:"LLM_AGENT_KEY"`
	DefaultBoardSize int     `mapstructure:"DEFAULT_BOARD_SIZE"`
	DefaultKomi      float64 `mapstructure:"DEFAULT_KOMI"`
	PageLimitRecords int     `mapstructure:"PAGE_LIMIT_RECORDS"`
}

func Setup(cfgPath string) (*Config, error) {
	viper.SetConfigFile(cfgPath)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if cfg.DefaultBoardSize == 0 {
		cfg.DefaultBoardSize = 19
	}
	if cfg.DefaultKomi == 0 {
		cfg.DefaultKomi = 6.5
	}
	if cfg.PageLimitRecords == 0 {
		cfg.PageLimitRecords = 20
	}

	return &cfg, nil
}
