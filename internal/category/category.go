package category

import (
	"strings"

	"golang.org/x/text/cases"
)

// Name identifies one of the fixed destination buckets files are sorted into.
// The value doubles as the destination folder name under the organized
// directory, so it is always non-empty.
type Name string

// The closed category set. Others is the universal fallback: extension and
// content classification both route unmatched files there, so resolution never
// fails.
const (
	Images      Name = "Images"
	Documents   Name = "Documents"
	Archives    Name = "Archives"
	Videos      Name = "Videos"
	Music       Name = "Music"
	Code        Name = "Code"
	Executables Name = "Executables"
	Others      Name = "Others"
)

// Folder returns the subdirectory name used for the category.
func (n Name) Folder() string { return string(n) }

// All returns every category in a stable order, Others last.
func All() []Name {
	return []Name{Images, Documents, Archives, Videos, Music, Code, Executables, Others}
}

type extensionRule struct {
	category   Name
	extensions []string
}

// extensionTable maps each category to the extensions it owns. Extensions are
// lowercase and carry the leading dot. The canonical table is disjoint; were a
// deployment to break that, the first owning category in this order wins.
var extensionTable = []extensionRule{
	{Images, []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp"}},
	{Documents, []string{".pdf", ".docx", ".doc", ".txt", ".xlsx", ".pptx", ".md"}},
	{Archives, []string{".zip", ".tar", ".gz", ".rar", ".7z"}},
	{Videos, []string{".mp4", ".mkv", ".avi", ".mov"}},
	{Music, []string{".mp3", ".wav", ".aac", ".flac"}},
	{Code, []string{".py", ".js", ".html", ".css", ".cpp", ".java", ".sh"}},
	{Executables, []string{".exe", ".msi", ".deb", ".apk", ".bin", ".appimage"}},
}

var extensionIndex = buildExtensionIndex()

func buildExtensionIndex() map[string]Name {
	index := make(map[string]Name)
	for _, rule := range extensionTable {
		for _, ext := range rule.extensions {
			if _, taken := index[ext]; taken {
				continue
			}
			index[ext] = rule.category
		}
	}
	return index
}

// FromExtension resolves a file extension (leading dot, any case) to its
// owning category. Empty or unknown extensions resolve to Others.
func FromExtension(ext string) Name {
	if ext == "" {
		return Others
	}
	if owner, ok := extensionIndex[strings.ToLower(ext)]; ok {
		return owner
	}
	return Others
}

type keywordRule struct {
	category Name
	keywords []string
}

// keywordRules are tested in declaration order against the sniffed content
// description; the first category with a matching keyword wins. Order matters:
// a shell script reads as both "executable" and "script", and the table
// resolves it to Executables.
var keywordRules = []keywordRule{
	{Executables, []string{"ELF", "executable", "PE32", "Mach-O"}},
	{Documents, []string{"PDF", "Microsoft", "Word", "Excel", "PowerPoint", "Rich Text"}},
	{Archives, []string{"archive", "compressed", "gzip", "bzip2"}},
	{Images, []string{"image", "bitmap", "JPEG", "PNG"}},
	{Videos, []string{"video", "AVI", "MP4", "Matroska"}},
	{Music, []string{"audio", "MPEG ADTS", "FLAC", "WAV", "MP3"}},
	{Code, []string{"ASCII text", "script", "source"}},
}

var foldedKeywordRules = foldKeywordRules()

func foldKeywordRules() []keywordRule {
	fold := cases.Fold()
	folded := make([]keywordRule, 0, len(keywordRules))
	for _, rule := range keywordRules {
		keywords := make([]string, 0, len(rule.keywords))
		for _, keyword := range rule.keywords {
			keywords = append(keywords, fold.String(keyword))
		}
		folded = append(folded, keywordRule{category: rule.category, keywords: keywords})
	}
	return folded
}

// MatchDescription tests a content description against the keyword rules and
// returns the first matching category. Matching is caseless substring
// containment. The second return reports whether any rule matched; callers
// fall back to extension lookup when it is false.
func MatchDescription(description string) (Name, bool) {
	if strings.TrimSpace(description) == "" {
		return "", false
	}
	folded := cases.Fold().String(description)
	for _, rule := range foldedKeywordRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(folded, keyword) {
				return rule.category, true
			}
		}
	}
	return "", false
}
