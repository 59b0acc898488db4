package user

import (
	"os"
	"os/user"
	"strings"
)

// OwnerEnv overrides the owner recorded on new deals
const OwnerEnv = "DEALDESK_OWNER"

// DefaultOwner returns the owner reference recorded on deals created without
// an explicit owner. It tries, in order:
// 1. DEALDESK_OWNER
// 2. user.Current() - the OS account name
// 3. USER environment variable - fallback for restricted environments
// 4. "unknown" - final fallback to ensure a non-empty value
func DefaultOwner() string {
	return resolveOwner(os.Getenv, user.Current)
}

func resolveOwner(getenv func(string) string, current func() (*user.User, error)) string {
	if owner := strings.TrimSpace(getenv(OwnerEnv)); owner != "" {
		return owner
	}
	if u, err := current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}
