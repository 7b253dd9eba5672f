package screening

// ContractVersion identifies the schema for match verdicts shared across services.
const ContractVersion = "v0.1.0"

// Relevance tiers as they appear on the wire. Downstream consumers switch on
// these values, so they are part of the contract.
const (
	TierLow    = "Low"
	TierMedium = "Medium"
	TierHigh   = "High"
)

// MatchVerdict is the minimal per-result verdict downstream decision logic
// needs: which screening record was evaluated, where it came from, and how
// relevant it is to the tenant.
type MatchVerdict struct {
	ResultID       string  `json:"result_id"`
	SourceType     string  `json:"source_type"`
	RelevanceScore float64 `json:"relevance_score"`
	RelevanceTier  string  `json:"relevance_tier"`
}
