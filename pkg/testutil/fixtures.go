package testutil

import (
	"fmt"

	"sift/internal/screening/models"
)

// TenantBuilder provides a fluent interface for building test tenants.
type TenantBuilder struct {
	tenant models.Tenant
}

// NewTenantBuilder creates a TenantBuilder with a fully populated identity.
func NewTenantBuilder() *TenantBuilder {
	return &TenantBuilder{
		tenant: models.Tenant{
			FirstName:   "Juan Carlos",
			LastName:    "Perez Gonzalez",
			DOB:         "1990-05-15",
			Gender:      "male",
			Nationality: "Colombian",
			Location:    "Bogota, Colombia",
		},
	}
}

func (b *TenantBuilder) WithName(firstName, lastName string) *TenantBuilder {
	b.tenant.FirstName = firstName
	b.tenant.LastName = lastName
	return b
}

func (b *TenantBuilder) WithDOB(dob string) *TenantBuilder {
	b.tenant.DOB = dob
	return b
}

func (b *TenantBuilder) WithGender(gender string) *TenantBuilder {
	b.tenant.Gender = gender
	return b
}

func (b *TenantBuilder) WithNationality(nationality string) *TenantBuilder {
	b.tenant.Nationality = nationality
	return b
}

func (b *TenantBuilder) WithLocation(location string) *TenantBuilder {
	b.tenant.Location = location
	return b
}

// Blank clears every attribute, producing a tenant with nothing to compare.
func (b *TenantBuilder) Blank() *TenantBuilder {
	b.tenant = models.Tenant{}
	return b
}

func (b *TenantBuilder) Build() models.Tenant {
	return b.tenant
}

// ResultFor returns a screening result whose attributes mirror the tenant
// exactly. Mutate individual fields to construct partial matches.
func ResultFor(t models.Tenant, resultID string) models.ScreeningResult {
	return models.ScreeningResult{
		ID:          resultID,
		FirstName:   t.FirstName,
		LastName:    t.LastName,
		DOB:         t.DOB,
		Gender:      t.Gender,
		Nationality: t.Nationality,
		Location:    t.Location,
	}
}

// Pipeline assembles blocks into pipeline input.
func Pipeline(blocks ...models.PipelineBlock) []models.PipelineBlock {
	return blocks
}

// Block builds one pipeline block for a screening source.
func Block(sourceType string, results ...models.ScreeningResult) models.PipelineBlock {
	return models.PipelineBlock{Type: sourceType, Results: results}
}

// BulkResults generates n copies of the tenant's identity with sequential IDs.
func BulkResults(t models.Tenant, n int) []models.ScreeningResult {
	results := make([]models.ScreeningResult, n)
	for i := range results {
		results[i] = ResultFor(t, fmt.Sprintf("r-%d", i))
	}
	return results
}
