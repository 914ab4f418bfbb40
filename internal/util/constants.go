package util

const TimeFormat = "2006-01-02 15:04:05"

// 与 questions 表的列宽一致
const (
	MaxQuestionTextLen = 200
	MaxOptionLen       = 100
	MaxNameLen         = 100
)

var OptionLetters = []string{"A", "B", "C", "D"}

const (
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// IsValidOption reports whether letter is one of A-D.
func IsValidOption(letter string) bool {
	for _, l := range OptionLetters {
		if l == letter {
			return true
		}
	}
	return false
}
