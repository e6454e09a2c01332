package types

// ContentRequest is one content-studio generation request. Immutable once
// submitted; platform order and card order are preserved through the pipeline.
type ContentRequest struct {
	Platforms       []string `json:"platforms" binding:"required,min=1"`
	SelectedCardIDs []string `json:"selected_card_ids" binding:"required,min=1"`
	Tone            string   `json:"tone"`
	PromptText      string   `json:"prompt_text" binding:"required"`
	Format          string   `json:"format"`
}

// SearchHit is one scored field of a card record.
type SearchHit struct {
	Field     string `json:"field"`
	Value     string `json:"value"`
	Relevance int    `json:"relevance"`
}

// Eligibility is the nested eligibility block of ExtractedFacts. Absent catalog
// values surface as the literal "Not specified".
type Eligibility struct {
	Age                string `json:"age"`
	IncomeSalaried     string `json:"income_salaried"`
	IncomeSelfEmployed string `json:"income_self_employed"`
	CreditScore        string `json:"credit_score"`
}

// ExtractedFacts is the intent-scoped evidence pulled from one card record.
// A field is populated only when the matching intent appeared in the request.
type ExtractedFacts struct {
	JoiningFee  string       `json:"joining_fee,omitempty"`
	AnnualFee   string       `json:"annual_fee,omitempty"`
	RewardRate  string       `json:"reward_rate,omitempty"`
	KeyFeatures []string     `json:"key_features,omitempty"`
	Benefits    []string     `json:"benefits,omitempty"`
	Eligibility *Eligibility `json:"eligibility,omitempty"`
}

// RAGResult is the retrieval output for one selected card.
type RAGResult struct {
	CardName       string         `json:"card_name"`
	BankName       string         `json:"bank_name"`
	Hits           []SearchHit    `json:"hits"`
	ExtractedFacts ExtractedFacts `json:"extracted_facts"`
}

// Reference is one evidence citation attached to generated content.
type Reference struct {
	Text     string `json:"text"`
	Source   string `json:"source"`
	CardName string `json:"card_name"`
}
