package resume

// MaxSize: предельный размер загружаемого резюме (20 MB).
const MaxSize = 20 * 1024 * 1024

const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Format: распознанный формат файла.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOC  Format = "doc"
	FormatDOCX Format = "docx"
)

// File: резюме, прошедшее проверку перед загрузкой.
type File struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Format   Format `json:"format"`
	Size     int64  `json:"size"`
	// Chars: объём извлечённого текста; 0 для .doc, который не разбирается.
	Chars int    `json:"chars"`
	Data  []byte `json:"-"`
}

// ErrRejected: файл не прошёл проверку; текст показывается пользователю как есть.
type ErrRejected string

func (e ErrRejected) Error() string { return string(e) }

const (
	ErrUnsupportedType ErrRejected = "Only PDF, DOC, and DOCX files are allowed"
	ErrTooLarge        ErrRejected = "File size must be less than 20MB"
	ErrEmpty           ErrRejected = "Please choose a file to upload"
	ErrUnreadable      ErrRejected = "The file could not be read. Please upload a valid PDF or DOCX"
)
