package auth

import (
	"golang.org/x/oauth2"
)

const (
	// Strava OAuth endpoints
	AuthURL  = "https://www.strava.com/oauth/authorize"
	TokenURL = "https://www.strava.com/oauth/token"
)

// Scopes required for importing activities (Strava uses comma-separated scopes)
var Scopes = []string{
	"read,activity:read",
}

// Config holds the OAuth client credentials
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "http://localhost:8080/api/strava/callback"
}

// NewOAuthConfig creates an oauth2.Config from our Config
func NewOAuthConfig(cfg Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  AuthURL,
			TokenURL: TokenURL,
		},
		RedirectURL: cfg.RedirectURL,
		Scopes:      Scopes,
	}
}

// Athlete summarizes the athlete block Strava embeds in its token response.
type Athlete struct {
	ID        int64
	Firstname string
	Lastname  string
}

// ExtractAthlete pulls the athlete info out of the token extras.
// Strava includes the athlete object in the token exchange response.
func ExtractAthlete(token *oauth2.Token) Athlete {
	var out Athlete
	athlete, ok := token.Extra("athlete").(map[string]interface{})
	if !ok {
		return out
	}
	if id, ok := athlete["id"].(float64); ok {
		out.ID = int64(id)
	}
	if v, ok := athlete["firstname"].(string); ok {
		out.Firstname = v
	}
	if v, ok := athlete["lastname"].(string); ok {
		out.Lastname = v
	}
	return out
}
