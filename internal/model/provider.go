package model

// Provider identifies which upstream catalog an item came from.
type Provider string

const (
	// ProviderOpenLibrary is the library-subjects API.
	ProviderOpenLibrary Provider = "openlibrary"
	// ProviderGoogleBooks is the commercial-catalog API.
	ProviderGoogleBooks Provider = "googlebooks"
)

func (p Provider) String() string {
	return string(p)
}
