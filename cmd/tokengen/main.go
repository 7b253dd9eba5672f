// Package main provides a CLI tool for generating test credentials for the
// sift API. These credentials use the dev signing key and will NOT work in
// production.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	jwttoken "sift/internal/jwt_token"
	"sift/pkg/secrets"
)

const (
	// Dev signing key - matches config.go when SIFT_JWT_SIGNING_KEY is not set
	devSigningKey = "dev-secret-key-change-in-production"

	defaultTokenTTL = 15 * time.Minute
)

type tokenOutput struct {
	Token     string            `json:"token"`
	Type      string            `json:"type"`
	ExpiresIn string            `json:"expires_in"`
	Claims    map[string]any    `json:"claims,omitempty"`
	Usage     map[string]string `json:"usage"`
}

type apiKeyOutput struct {
	APIKey string            `json:"api_key"`
	Hash   string            `json:"hash"`
	Usage  map[string]string `json:"usage"`
}

func main() {
	// Subcommands
	tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
	apikeyCmd := flag.NewFlagSet("apikey", flag.ExitOnError)

	// Service token flags
	tokenServiceID := tokenCmd.String("service-id", "local-dev", "Calling service identifier")
	tokenKey := tokenCmd.String("signing-key", devSigningKey, "JWT signing key")
	tokenTTL := tokenCmd.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	tokenJSON := tokenCmd.Bool("json", false, "Output as JSON")

	// API key flags
	apikeyJSON := apikeyCmd.Bool("json", false, "Output as JSON")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "token":
		tokenCmd.Parse(os.Args[2:])
		generateServiceToken(*tokenServiceID, *tokenKey, *tokenTTL, *tokenJSON)
	case "apikey":
		apikeyCmd.Parse(os.Args[2:])
		generateAPIKey(*apikeyJSON)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokengen - Generate test credentials for the sift API

WARNING: The default signing key is the dev key and will NOT work in
         production. Only use for local development and testing.

Usage:
  tokengen <command> [flags]

Commands:
  token     Generate a service token (JWT)
  apikey    Generate an API key and its bcrypt hash

Examples:
  # Generate a service token with defaults
  tokengen token

  # Generate a service token for a named caller with custom TTL
  tokengen token -service-id "screening-worker" -ttl 1h

  # Generate an API key; export the hash as SIFT_API_KEY_HASH
  tokengen apikey

  # Output as JSON
  tokengen token -json

Use "tokengen <command> -h" for more information about a command.`)
}

func generateServiceToken(serviceID, signingKey string, ttl time.Duration, jsonOutput bool) {
	svc := jwttoken.NewJWTService(signingKey, jwttoken.DefaultIssuer, jwttoken.DefaultAudience, ttl)

	token, jti, err := svc.GenerateServiceToken(serviceID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(tokenOutput{
			Token:     token,
			Type:      "service_token",
			ExpiresIn: ttl.String(),
			Claims: map[string]any{
				"service_id": serviceID,
				"jti":        jti,
			},
			Usage: map[string]string{
				"header": "Authorization: Bearer <token>",
			},
		})
		return
	}

	fmt.Println("Service Token (JWT)")
	fmt.Println("===================")
	fmt.Printf("Service ID: %s\n", serviceID)
	fmt.Printf("Expires In: %s\n", ttl)
	fmt.Printf("JTI:        %s\n", jti)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" http://localhost:8080/evaluate")
}

func generateAPIKey(jsonOutput bool) {
	key, err := secrets.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating API key: %v\n", err)
		os.Exit(1)
	}

	hash, err := secrets.Hash(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing API key: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(apiKeyOutput{
			APIKey: key,
			Hash:   hash,
			Usage: map[string]string{
				"header": "X-API-Key: <api_key>",
				"server": "export SIFT_API_KEY_HASH='<hash>'",
			},
		})
		return
	}

	fmt.Println("API Key")
	fmt.Println("=======")
	fmt.Println("Key (give to the caller, shown once):")
	fmt.Println(key)
	fmt.Println()
	fmt.Println("Hash (configure on the server):")
	fmt.Println(hash)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  export SIFT_API_KEY_HASH='<hash>'")
	fmt.Println("  curl -H \"X-API-Key: <key>\" http://localhost:8080/evaluate")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		os.Exit(1)
	}
}
