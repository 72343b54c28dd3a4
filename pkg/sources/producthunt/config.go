package producthunt

import "time"

type Config struct {
	ClientID     string        `env:"PRODUCT_HUNT_API_KEY,default=" validate:"required"`
	ClientSecret string        `env:"PRODUCT_HUNT_API_SECRET,default=" validate:"required"`
	APIURL       string        `env:"PRODUCT_HUNT_API_URL,default=https://api.producthunt.com/v1" validate:"required,url"`
	// Product Hunt API can take some more time to respond
	Timeout time.Duration `env:"HTTP_TIMEOUT,default=60s" validate:"gt=0"`
	// MaxPages caps pagination of votes and comments.
	MaxPages int `env:"SYNC_MAX_PAGES,default=1000" validate:"gte=0"`
}
