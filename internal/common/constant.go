// Package common holds constants and sentinel errors shared by the client
// packages.
package common

// Header names sent on every API request.
const (
	RequestIDHeaderName     = "X-Request-ID"
	AuthorizationHeaderName = "Authorization"
)

// TokenKey is the session-store key for the bearer token.
const TokenKey = "recipe_token"

// RecipeListStateName names the saved return state of the recipe list.
const RecipeListStateName = "recipe_list"
