package typeform

// Kind selects the type-specific handling for a mapped field.
type Kind int

// Field handling kinds.
const (
	KindText Kind = iota
	KindEmail
	KindPhone
	KindInt
	KindFloat
	KindList
)

// FieldMapping binds one opaque provider field ref to a named submission
// field and its handling kind.
type FieldMapping struct {
	Ref   string
	Field string
	Kind  Kind
}

// Schema is a versioned ref-to-field mapping. Evolving the form is a data
// change here, not a code change; refs the schema does not know are ignored.
type Schema struct {
	Version int
	Fields  []FieldMapping
}

// DefaultSchema returns the mapping for the current application form.
func DefaultSchema() Schema {
	return Schema{
		Version: 1,
		Fields: []FieldMapping{
			{Ref: "aea1a8b5-3439-418c-b873-5602a2b6107e", Field: "founder_name", Kind: KindText},
			{Ref: "48820fb6-e43c-4e5c-8f9c-d74428f9a679", Field: "founder_title", Kind: KindText},
			{Ref: "1c0f2be0-a322-4da4-8007-5dd5fb6d48d6", Field: "founder_email", Kind: KindEmail},
			{Ref: "39d91d37-55d8-4817-9454-84d663b31ae8", Field: "founder_phone", Kind: KindPhone},
			{Ref: "fb9e9315-f726-4642-aa37-448f5a7f5d7f", Field: "linkedin_url", Kind: KindText},
			{Ref: "3ad66bfa-4df3-4067-9f7c-0b5037459579", Field: "company_name", Kind: KindText},
			{Ref: "2abac0ae-4a29-4276-8f72-7a045fac3f01", Field: "website", Kind: KindText},
			{Ref: "ed20ab50-f510-4b63-bbde-8b08b7e856e8", Field: "description", Kind: KindText},
			{Ref: "de0b82e4-9ef5-484d-aa7d-2361d409f2ab", Field: "location", Kind: KindText},
			{Ref: "c2cf1c53-f317-4bc3-91cc-ef0e31d93cec", Field: "legal_structure", Kind: KindText},
			{Ref: "548fd3a6-97c7-44ab-9548-46511dc92d19", Field: "problem_statement", Kind: KindText},
			{Ref: "ce96d524-7fde-4e74-95d1-9a0985c862ab", Field: "solution_statement", Kind: KindText},
			{Ref: "7bd2bd0f-cb0b-4ba2-b995-b0efec6a12cd", Field: "unique_value", Kind: KindText},
			{Ref: "8554e2ef-2e62-4cec-99b0-70aebe2965c1", Field: "customer_validation", Kind: KindText},
			{Ref: "6a107f69-c163-442e-a085-50e115b9904c", Field: "active_users", Kind: KindInt},
			{Ref: "a3859307-8e1b-4cc5-8115-79bdd2652f77", Field: "paying_users", Kind: KindInt},
			{Ref: "5fc2054e-be02-467b-b498-2b9b890cc35a", Field: "customer_count", Kind: KindInt},
			{Ref: "10b68790-547f-4e9a-9fd2-4988bbef853e", Field: "mrr", Kind: KindFloat},
			{Ref: "2bd5e597-a398-4302-9af5-8d4ba1d3fe8c", Field: "funding_stage", Kind: KindText},
			{Ref: "e355201f-7fda-4218-bbba-0b6ac2b8295f", Field: "round_size", Kind: KindFloat},
			{Ref: "0f73410a-5e35-47d2-a19e-3f13832eb499", Field: "valuation", Kind: KindFloat},
			{Ref: "d39d8d40-0326-4783-84e2-5348818157ce", Field: "commitments", Kind: KindFloat},
			{Ref: "bcb24889-41fe-430d-a340-fb051f315458", Field: "lead_investor", Kind: KindText},
			{Ref: "6610cdd2-4fe3-4bd0-a5a3-58591e9e5e15", Field: "pitch_deck_url", Kind: KindText},
			{Ref: "be3ac46f-70dd-49bf-b5b5-32667ed1b2a4", Field: "referral_source", Kind: KindText},
			{Ref: "246a0303-c6f7-4d57-8907-021bcf43c641", Field: "founder_experience", Kind: KindList},
		},
	}
}
