package archive

import "testing"

// epubHeader is the start of a minimal epub container: a zip local file
// header whose first entry is the uncompressed "mimetype" file.
func epubHeader() []byte {
	data := make([]byte, 58)
	copy(data, "PK\x03\x04")
	copy(data[30:], "mimetypeapplication/epub+zip")
	return data
}

func mobiHeader() []byte {
	data := make([]byte, 80)
	copy(data[60:], "BOOKMOBI")
	return data
}

func TestValidateDownload(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		format DownloadFormat
		ok     bool
	}{
		{"valid epub", epubHeader(), DownloadEPUB, true},
		{"html served as epub", []byte("<html>Retry later</html>"), DownloadEPUB, false},
		{"valid mobi", mobiHeader(), DownloadMOBI, true},
		{"short mobi", []byte("BOOKMOBI"), DownloadMOBI, false},
		{"valid pdf", []byte("%PDF-1.7 rest of file"), DownloadPDF, true},
		{"html served as pdf", []byte("<html></html>"), DownloadPDF, false},
		{"html anything goes", []byte("<html></html>"), DownloadHTML, true},
		{"empty html", nil, DownloadHTML, false},
		{"unknown format", []byte("data"), DownloadFormat("docx"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDownload(tt.data, tt.format)
			if tt.ok && err != nil {
				t.Errorf("validateDownload failed: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("validateDownload accepted bad payload")
			}
		})
	}
}
