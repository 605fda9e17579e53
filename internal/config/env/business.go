package envconfig

import "github.com/caarlos0/env/v11"

type businessEnv struct {
	Currency         string   `env:"OPERATING_CURRENCY" envDefault:"CAD"`
	MerchantIdentity []string `env:"MERCHANT_IDENTITY,required"`
	FeeSchedulePath  string   `env:"FEE_SCHEDULE_PATH"`
	DonationPageURL  string   `env:"DONATION_PAGE_URL,required"`
	AdminEmail       string   `env:"ADMIN_EMAIL"`
}

type business struct {
	raw businessEnv
}

func NewBusinessConfig() (*business, error) {
	var raw businessEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &business{raw: raw}, nil
}

func (cfg *business) Currency() string           { return cfg.raw.Currency }
func (cfg *business) MerchantIdentity() []string { return cfg.raw.MerchantIdentity }
func (cfg *business) FeeSchedulePath() string    { return cfg.raw.FeeSchedulePath }
func (cfg *business) DonationPageURL() string    { return cfg.raw.DonationPageURL }
func (cfg *business) AdminEmail() string         { return cfg.raw.AdminEmail }
