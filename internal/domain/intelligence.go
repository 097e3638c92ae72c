package domain

// IntelligenceRecord accumulates structured identifiers harvested from
// scammer messages. Sequences only ever grow. Wire keys match the schema
// the external collector expects; bankAccounts is carried for
// compatibility even though no extractor currently populates it.
type IntelligenceRecord struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// NewIntelligenceRecord returns an empty record whose sequences serialize
// as [] rather than null.
func NewIntelligenceRecord() *IntelligenceRecord {
	return &IntelligenceRecord{
		BankAccounts:       []string{},
		UPIIDs:             []string{},
		PhishingLinks:      []string{},
		PhoneNumbers:       []string{},
		SuspiciousKeywords: []string{},
	}
}

// Clone returns a deep copy of the record.
func (r *IntelligenceRecord) Clone() *IntelligenceRecord {
	clone := &IntelligenceRecord{
		BankAccounts:       make([]string, len(r.BankAccounts)),
		UPIIDs:             make([]string, len(r.UPIIDs)),
		PhishingLinks:      make([]string, len(r.PhishingLinks)),
		PhoneNumbers:       make([]string, len(r.PhoneNumbers)),
		SuspiciousKeywords: make([]string, len(r.SuspiciousKeywords)),
	}
	copy(clone.BankAccounts, r.BankAccounts)
	copy(clone.UPIIDs, r.UPIIDs)
	copy(clone.PhishingLinks, r.PhishingLinks)
	copy(clone.PhoneNumbers, r.PhoneNumbers)
	copy(clone.SuspiciousKeywords, r.SuspiciousKeywords)
	return clone
}
