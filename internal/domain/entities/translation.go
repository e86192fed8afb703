package entities

// Translation is one routed translation call, identified by the
// fingerprint of its request. The fingerprint doubles as the cache key
// and as the durable handle UI actions use to recall "the last
// translation".
type Translation struct {
	SourceText     string `json:"source_text"`
	SourceLanguage string `json:"source_language"`
	TargetText     string `json:"target_text"`
	TargetLanguage string `json:"target_language"`
	Fingerprint    string `json:"fingerprint"`
}

// DetectedLanguage is one language-detection candidate.
type DetectedLanguage struct {
	Language   string `json:"language"`
	Confidence int    `json:"confidence"`
}

// LanguagePair is a (source, target) pair a provider can translate.
type LanguagePair struct {
	Source string
	Target string
}
