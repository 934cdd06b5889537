package dto

// CompatLookupResponse ubicación resuelta desde un id legado o sintético.
type CompatLookupResponse struct {
	Location    LocationResponse `json:"location"`
	IsMigrated  bool             `json:"is_migrated"`
	ResolvedVia string           `json:"resolved_via"` // synthetic | mapping | direct
}

// BatchTranslateRequest lote de identificadores a traducir (cualquier dirección).
type BatchTranslateRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=1000"`
}

// BatchTranslateResponse mapa parcial id→traducción; los no resueltos se omiten.
type BatchTranslateResponse struct {
	Translations map[string]string `json:"translations"`
	Resolved     int               `json:"resolved"`
	Requested    int               `json:"requested"`
}

// TranslationStatsResponse contadores de la capa de traducción.
type TranslationStatsResponse struct {
	TotalRequests     int64 `json:"total_requests"`
	LegacyRequests    int64 `json:"legacy_requests"`
	SyntheticRequests int64 `json:"synthetic_requests"`
	Translated        int64 `json:"translated"`
	NotTranslated     int64 `json:"not_translated"`
	CacheHits         int64 `json:"cache_hits"`
	CacheMisses       int64 `json:"cache_misses"`
}

// WarmupResponse resultado de precargar la caché de traducción.
type WarmupResponse struct {
	Loaded int `json:"loaded"`
}

// SampleIssueResponse hallazgo del auto-chequeo de compatibilidad.
type SampleIssueResponse struct {
	Kind          string `json:"kind"` // error | warning
	LegacyID      string `json:"legacy_id"`
	NewLocationID string `json:"new_location_id"`
	Message       string `json:"message"`
}

// CompatibilityReportResponse resultado del auto-chequeo de compatibilidad.
type CompatibilityReportResponse struct {
	SamplesChecked int                   `json:"samples_checked"`
	Passed         int                   `json:"passed"`
	Failed         int                   `json:"failed"`
	Issues         []SampleIssueResponse `json:"issues"`
	Success        bool                  `json:"success"`
	SuccessRate    string                `json:"success_rate"`
}
