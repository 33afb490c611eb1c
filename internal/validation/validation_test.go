package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ng-Passw0rd!", false},
		{"too short", "Sh0rt-pw!", true},
		{"too long", strings.Repeat("Aa1!", 40), true},
		{"no uppercase", "weak-passw0rd!!!", true},
		{"no lowercase", "WEAK-PASSW0RD!!!", true},
		{"no digit", "Weak-Password!!!", true},
		{"no special", "WeakPassword1234", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "blog_author-7", false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 31), true},
		{"invalid chars", "user name", true},
		{"leading underscore", "_user", true},
		{"trailing hyphen", "user-", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "author@example.com", false},
		{"subdomain", "a.b@mail.example.co", false},
		{"no at", "author.example.com", true},
		{"no tld", "author@example", true},
		{"too long", strings.Repeat("a", 250) + "@x.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCategorySlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"valid", "city-life_2024", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"spaces", "city life", true},
		{"cyrillic", "город", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategorySlug(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
