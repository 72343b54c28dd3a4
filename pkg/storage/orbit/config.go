package orbit

import "time"

type Config struct {
	WorkspaceID string        `env:"ORBIT_WORKSPACE_ID,default=" validate:"required"`
	APIKey      string        `env:"ORBIT_API_KEY,default=" validate:"required"`
	APIURL      string        `env:"ORBIT_API_URL,default=https://app.orbit.love/api/v1" validate:"required,url"`
	Timeout     time.Duration `env:"HTTP_TIMEOUT,default=60s" validate:"gt=0"`
}
