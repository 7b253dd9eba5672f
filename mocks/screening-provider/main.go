package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort      = "8082"
	defaultAPIKey    = "screening-provider-secret-key"
	defaultLatencyMs = "50"
)

type SearchRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SearchResponse mirrors the pipeline_data shape sift accepts, so the output
// of this mock can be forwarded to POST /evaluate unchanged.
type SearchResponse struct {
	PipelineData []PipelineBlock `json:"pipeline_data"`
	CheckedAt    string          `json:"checked_at"`
}

type PipelineBlock struct {
	Type    string            `json:"type"`
	Results []ScreeningResult `json:"results"`
}

type ScreeningResult struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DOB         string `json:"dob,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Location    string `json:"location,omitempty"`
	RiskType    string `json:"risk_type,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var (
	apiKey    = getEnv("API_KEY", defaultAPIKey)
	latencyMs = getEnvInt("LATENCY_MS", defaultLatencyMs)
)

// listedNames contains predefined test surnames that always produce hits.
// These "magic" names allow e2e tests to control the mock's behavior.
var listedNames = map[string]bool{
	"SANCTIONED": true, // Always returns a blacklist hit
	"WATCHLIST":  true, // Always returns a watchlist hit
	"PEP":        true, // Politically exposed person
}

// cleanNames contains surnames that always return zero results.
var cleanNames = map[string]bool{
	"CLEAN":   true, // Clean tenant for screening tests
	"NOMATCH": true, // No-result tenant for empty pipeline tests
}

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/api/v1/screening/search", handleSearch)
	http.HandleFunc("/search", handleSearch) // Simplified path for adapter

	log.Printf("🔍 Mock Screening Provider API starting on port %s", port)
	log.Printf("📝 API Key: %s", apiKey)
	log.Printf("⏱️  Simulated latency: %dms", latencyMs)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "screening-provider",
		"version": "1.0.0",
	})
}

func handleSearch(w http.ResponseWriter, r *http.Request) {
	// Simulate latency
	time.Sleep(time.Duration(latencyMs) * time.Millisecond)

	// Log request
	log.Printf("📥 Incoming request: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

	// Only accept POST
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Check API key
	authHeader := r.Header.Get("X-API-Key")
	if authHeader == "" {
		sendError(w, "Missing X-API-Key header", http.StatusUnauthorized)
		return
	}
	if authHeader != apiKey {
		sendError(w, "Invalid API key", http.StatusUnauthorized)
		return
	}

	// Parse request body
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.FirstName == "" && req.LastName == "" {
		sendError(w, "first_name or last_name is required", http.StatusBadRequest)
		return
	}

	// Generate deterministic screening data based on the searched name
	response := generateResults(req.FirstName, req.LastName)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)

	total := 0
	for _, block := range response.PipelineData {
		total += len(block.Results)
	}
	if total > 0 {
		log.Printf("🚨 Screening search: %s %s -> %d result(s)", req.FirstName, req.LastName, total)
	} else {
		log.Printf("✅ Screening search: %s %s -> NO RESULTS", req.FirstName, req.LastName)
	}
}

func generateResults(firstName, lastName string) SearchResponse {
	checkedAt := time.Now().UTC().Format(time.RFC3339)
	key := strings.ToUpper(strings.TrimSpace(lastName))

	// Check for predefined test names first
	if cleanNames[key] {
		log.Printf("🧪 Using predefined CLEAN screening data for: %s", key)
		return SearchResponse{PipelineData: []PipelineBlock{}, CheckedAt: checkedAt}
	}
	if listedNames[key] {
		log.Printf("🧪 Using predefined LISTED screening data for: %s", key)
		return SearchResponse{
			PipelineData: []PipelineBlock{
				{
					Type: "refinitiv-blacklist",
					Results: []ScreeningResult{
						{
							ID:          "magic-1",
							FirstName:   firstName,
							LastName:    lastName,
							DOB:         "1990-05-15",
							Gender:      "male",
							Nationality: "Colombian",
							Location:    "Bogota, Colombia",
							RiskType:    "high",
						},
					},
				},
			},
			CheckedAt: checkedAt,
		}
	}

	// Use hash to generate deterministic but pseudo-random data
	hash := sha256.Sum256([]byte(firstName + " " + lastName))
	hashStr := hex.EncodeToString(hash[:])
	hashInt := int(hash[0])

	// Roughly 40% of names produce at least one screening hit
	lastHex := hashStr[len(hashStr)-1:]
	hit := strings.Contains("0123456", lastHex)
	if !hit {
		return SearchResponse{PipelineData: []PipelineBlock{}, CheckedAt: checkedAt}
	}

	sourceTypes := []string{"refinitiv-blacklist", "un-sanctions", "adverse-media"}
	riskTypes := []string{"low", "medium", "high"}
	locations := []string{"Bogota, Colombia", "Mexico City, Mexico", "Madrid, Spain", "Lima, Peru"}
	nationalities := []string{"Colombian", "Mexican", "Spanish", "Peruvian"}

	// One exact-name result plus a partial-name variant
	year := 1950 + (hashInt % 50)
	results := []ScreeningResult{
		{
			ID:          fmt.Sprintf("hit-%s", hashStr[:8]),
			FirstName:   firstName,
			LastName:    lastName,
			DOB:         fmt.Sprintf("%d-%02d-%02d", year, 1+(hashInt%12), 1+(hashInt%28)),
			Gender:      []string{"male", "female"}[hashInt%2],
			Nationality: nationalities[hashInt%len(nationalities)],
			Location:    locations[hashInt%len(locations)],
			RiskType:    riskTypes[hashInt%len(riskTypes)],
		},
		{
			ID:        fmt.Sprintf("partial-%s", hashStr[8:16]),
			FirstName: firstName,
			LastName:  "",
			Location:  locations[(hashInt+1)%len(locations)],
			RiskType:  riskTypes[(hashInt+1)%len(riskTypes)],
		},
	}

	return SearchResponse{
		PipelineData: []PipelineBlock{
			{Type: sourceTypes[hashInt%len(sourceTypes)], Results: results},
		},
		CheckedAt: checkedAt,
	}
}

func sendError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
	log.Printf("❌ Error response: %d - %s", code, message)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key, defaultValue string) int {
	value := getEnv(key, defaultValue)
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Invalid integer value for %s, using default: %s", key, defaultValue)
		intValue, _ = strconv.Atoi(defaultValue)
	}
	return intValue
}
