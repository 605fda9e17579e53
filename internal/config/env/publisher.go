package envconfig

import "github.com/caarlos0/env/v11"

type publisherEnv struct {
	Bucket string `env:"PUBLIC_S3_BUCKET"`
	Region string `env:"PUBLIC_S3_REGION" envDefault:"us-east-1"`
	Prefix string `env:"PUBLIC_S3_PREFIX"`
}

type publisher struct {
	raw publisherEnv
}

func NewPublisherConfig() (*publisher, error) {
	var raw publisherEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &publisher{raw: raw}, nil
}

// Enabled reports whether public documents are uploaded after each commit.
func (cfg *publisher) Enabled() bool  { return cfg.raw.Bucket != "" }
func (cfg *publisher) Bucket() string { return cfg.raw.Bucket }
func (cfg *publisher) Region() string { return cfg.raw.Region }
func (cfg *publisher) Prefix() string { return cfg.raw.Prefix }
