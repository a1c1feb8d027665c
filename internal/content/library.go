// Package content serves the bilingual health-education reference.
//
// Text lives in embedded YAML message files, one per language, keyed by
// topic-prefixed message IDs (e.g. "ors.steps.3"). The structure of each
// topic (which tips, how many steps) is defined here; only the words come
// from the message files. Messages missing from a language fall back to
// English, and unsupported languages resolve to English.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// ErrUnknownTopic is returned for a topic identifier that is not served.
var ErrUnknownTopic = errors.New("unknown education topic")

// Topic identifiers.
const (
	TopicPrevention = "prevention"
	TopicORS        = "ors"
	TopicWarning    = "warning"
	TopicDiseases   = "diseases"
)

// Library resolves education topics in a requested language.
type Library struct {
	bundle      *i18n.Bundle
	defaultLang language.Tag
}

// Load builds a Library from the embedded message files. defaultLang is used
// when a request names no language; English is always the final fallback.
func Load(defaultLang string) (*Library, error) {
	return LoadFS(localeFS, "locales", defaultLang)
}

// LoadFS builds a Library from every *.yaml file under dir in fsys. Each
// file's base name is its language tag.
func LoadFS(fsys fs.FS, dir, defaultLang string) (*Library, error) {
	tag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("parse default language %q: %w", defaultLang, err)
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list message files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no message files in %s", dir)
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(fsys, f); err != nil {
			return nil, fmt.Errorf("load message file %s: %w", f, err)
		}
	}

	return &Library{bundle: bundle, defaultLang: tag}, nil
}

// Languages returns the language tags with message files loaded.
func (l *Library) Languages() []string {
	tags := l.bundle.LanguageTags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

// TopicIDs returns the served topics in display order.
func TopicIDs() []string {
	return []string{TopicPrevention, TopicORS, TopicWarning, TopicDiseases}
}

// Education is the full reference in one language.
type Education struct {
	Language string  `json:"language"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Topics   []Topic `json:"topics"`
}

// Topic is one tab of the reference.
type Topic struct {
	ID       string   `json:"id"`
	Language string   `json:"language"`
	Label    string   `json:"label"`
	Title    string   `json:"title,omitempty"`
	Entries  []Entry  `json:"entries,omitempty"`
	Lists    []List   `json:"lists,omitempty"`
	Notes    []string `json:"notes,omitempty"`
}

// Entry is a titled card: a prevention tip or a disease profile.
type Entry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Priority string `json:"priority,omitempty"`
	Body     string `json:"body,omitempty"`
	Facts    []Fact `json:"facts,omitempty"`
}

// Fact is a labelled line inside an entry.
type Fact struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// List is an optionally headed sequence of items.
type List struct {
	Heading string   `json:"heading,omitempty"`
	Items   []string `json:"items"`
}

// All returns every topic localized into lang.
func (l *Library) All(lang string) (Education, error) {
	tr := l.translator(lang)
	edu := Education{
		Title:    tr.msg("page.title"),
		Subtitle: tr.msg("page.subtitle"),
	}
	for _, id := range TopicIDs() {
		topic, err := l.Topic(lang, id)
		if err != nil {
			return Education{}, err
		}
		edu.Topics = append(edu.Topics, topic)
	}
	if tr.err != nil {
		return Education{}, tr.err
	}
	edu.Language = tr.lang()
	return edu, nil
}

// Topic returns one topic localized into lang.
func (l *Library) Topic(lang, id string) (Topic, error) {
	build, ok := topicBuilders[id]
	if !ok {
		return Topic{}, fmt.Errorf("%w: %q", ErrUnknownTopic, id)
	}

	tr := l.translator(lang)
	topic := Topic{ID: id, Label: tr.msg("topic." + id)}
	build(tr, &topic)
	if tr.err != nil {
		return Topic{}, tr.err
	}
	topic.Language = tr.lang()
	return topic, nil
}

func (l *Library) translator(lang string) *translator {
	langs := []string{l.defaultLang.String()}
	if lang != "" {
		langs = append([]string{lang}, langs...)
	}
	return &translator{
		localizer: i18n.NewLocalizer(l.bundle, langs...),
		fallback:  i18n.NewLocalizer(l.bundle, language.English.String()),
	}
}

// translator localizes message IDs, remembering the first failure so topic
// builders can be written without per-call error checks. Messages missing
// from the resolved language are taken from English; the reported language
// stays the resolved one.
type translator struct {
	localizer *i18n.Localizer
	fallback  *i18n.Localizer
	tag       language.Tag
	err       error
}

func (t *translator) msg(id string) string {
	if t.err != nil {
		return ""
	}
	cfg := &i18n.LocalizeConfig{MessageID: id}
	s, tag, err := t.localizer.LocalizeWithTag(cfg)
	var notFound *i18n.MessageNotFoundErr
	if errors.As(err, &notFound) {
		if t.tag == language.Und {
			t.tag = notFound.Tag
		}
		s, err = t.fallback.Localize(cfg)
	} else if err == nil && t.tag == language.Und {
		t.tag = tag
	}
	if err != nil {
		t.err = fmt.Errorf("localize %s: %w", id, err)
		return ""
	}
	return s
}

func (t *translator) numbered(prefix string, n int) []string {
	items := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, t.msg(prefix+"."+strconv.Itoa(i)))
	}
	return items
}

func (t *translator) lang() string {
	return t.tag.String()
}
