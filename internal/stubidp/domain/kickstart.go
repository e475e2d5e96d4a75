package domain

// Kickstart is the optional seed document applied at boot. It pins the
// provider identifiers to known values and pre-creates users, so a fresh
// instance is immediately usable without any manual setup.
type Kickstart struct {
	APIKey        string          `yaml:"apiKey"`
	TenantID      string          `yaml:"tenantId"`
	ApplicationID string          `yaml:"applicationId"`
	Users         []KickstartUser `yaml:"users"`
}

type KickstartUser struct {
	Email     string   `yaml:"email"`
	FirstName string   `yaml:"firstName"`
	LastName  string   `yaml:"lastName"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	Roles     []string `yaml:"roles"`
}
