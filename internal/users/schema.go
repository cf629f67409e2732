// Package users defines the User entity: its rule table and the constructors
// wiring it to a repository.
package users

import (
	"regexp"

	"github.com/gogotex/usergroups/internal/schema"
)

// EmailPattern is the simple email shape accepted for User.email.
var EmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Schema is the User rule table. Passwords are stored as supplied.
var Schema = schema.Schema{
	Name:       "User",
	Collection: "users",
	Rules: []schema.Rule{
		{Field: "username", Required: true, MinLength: 3, MaxLength: 50},
		{Field: "email", Required: true, Pattern: EmailPattern, PatternMessage: "must be a valid email address", Unique: true},
		{Field: "password", Required: true, MinLength: 6},
	},
}
