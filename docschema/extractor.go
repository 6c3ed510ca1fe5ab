package docschema

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"

	"go.jacobcolvin.com/builddocs/jsdoc"
)

// Extractor produces [Document] values from annotated source.
type Extractor struct {
	logger      *slog.Logger
	extensions  []string
	concurrency int
}

// Option configures an Extractor.
type Option func(*Extractor)

// New creates an Extractor with the given options.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		logger:      slog.Default(),
		extensions:  []string{".js"},
		concurrency: runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// WithExtensions sets the file extensions read by [Extractor.ScanDirectory].
func WithExtensions(exts ...string) Option {
	return func(e *Extractor) {
		e.extensions = exts
	}
}

// WithConcurrency limits the number of files [Extractor.ScanDirectory]
// processes at once. Values below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(e *Extractor) {
		e.concurrency = max(n, 1)
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// ExtractOne builds a document from the first comment block in src. name is
// used when the block declares no name of its own. A source without comment
// blocks yields a document holding only name.
func (e *Extractor) ExtractOne(src []byte, name string) (*Document, error) {
	blocks, err := e.parse(src)
	if err != nil {
		return nil, err
	}

	if len(blocks) == 0 {
		return &Document{Name: name, kind: docEmpty}, nil
	}

	return e.ExtractBlock(blocks[0], name)
}

// ExtractAll builds a document from every named comment block in src.
//
// When expected is non-empty, only documents whose name is listed are kept,
// and a stub document is appended for each listed name that was not found,
// in the order of expected.
func (e *Extractor) ExtractAll(src []byte, expected ...string) ([]*Document, error) {
	blocks, err := e.parse(src)
	if err != nil {
		return nil, err
	}

	docs := make([]*Document, 0, len(blocks))

	for i, block := range blocks {
		doc, err := e.ExtractBlock(block, "")
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}

		if doc.Name == "" {
			e.logger.Debug("skip unnamed block", slog.Int("block", i))

			continue
		}

		if len(expected) > 0 && !slices.Contains(expected, doc.Name) {
			e.logger.Debug("skip unexpected block", slog.String("name", doc.Name))

			continue
		}

		docs = append(docs, doc)
	}

	var injected []string

	for _, name := range expected {
		found := slices.ContainsFunc(docs, func(d *Document) bool { return d.Name == name })
		if found || slices.Contains(injected, name) {
			continue
		}

		injected = append(injected, name)
		docs = append(docs, &Document{Name: name, kind: docStub})
	}

	return docs, nil
}

// ExtractBlock builds a document from one comment block.
func (e *Extractor) ExtractBlock(block jsdoc.Block, name string) (*Document, error) {
	doc := &Document{Name: name}

	if len(block.Lines) > 0 {
		headName, desc := parseHeadline(block.Lines[0])
		if headName != "" {
			doc.Name = headName
		}

		doc.Description = desc
		doc.FullDescription = fullDescription(block.Lines[1:])
	}

	for i, tag := range block.TagsNamed(TagName.String()) {
		n, err := parseNameTag(tag.Value)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			doc.Name = n
		}
	}

	for _, tag := range block.Tags {
		if KindOf(tag.Name) == TagUnknown {
			e.logger.Debug("ignore unknown tag",
				slog.String("tag", tag.Name),
				slog.String("name", doc.Name),
			)
		}
	}

	var err error

	doc.Params, err = resolveParams(block.TagsNamed(TagParam.String()))
	if err != nil {
		return nil, err
	}

	doc.Params = nonNil(doc.Params)

	doc.Throws, err = resolveThrows(block)
	if err != nil {
		return nil, err
	}

	doc.Errors, err = compileErrors(doc.Throws)
	if err != nil {
		return nil, err
	}

	doc.Secrets, err = resolveSecrets(block.TagsNamed(TagSecret.String()))
	if err != nil {
		return nil, err
	}

	doc.Returns, err = resolveReturns(block.TagsNamed(TagReturns.String()))
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func (e *Extractor) parse(src []byte) ([]jsdoc.Block, error) {
	blocks, err := jsdoc.ParseContext(context.Background(), src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}

	return blocks, nil
}

// fullDescription joins the non-empty lines after the headline.
func fullDescription(lines []string) string {
	parts := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}

	return strings.Join(parts, " ")
}
