package export

import (
	"fmt"
	"net/url"
	"strings"

	"welfare-ledger/internal/pkg/apperrors"
)

// Linker builds absolute download URLs for the bridge FILE_READY reply.
type Linker struct {
	baseURL string
}

func NewLinker(publicBaseURL string) *Linker {
	return &Linker{baseURL: strings.TrimSuffix(publicBaseURL, "/")}
}

func (l *Linker) DownloadURL(dataset, format string) (string, error) {
	d, err := ParseDataset(dataset)
	if err != nil {
		return "", err
	}
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	if l.baseURL == "" {
		return "", fmt.Errorf("%w: public base url is not configured", apperrors.ErrInternalServer)
	}
	return fmt.Sprintf("%s/exports/%s?%s", l.baseURL, url.PathEscape(string(d)), url.Values{"format": {string(f)}}.Encode()), nil
}
