package flatfile

import (
	"github.com/gboya/flatfiles/trie"
)

// separatorPriority is the candidate order used when guessing a file's
// separator: the first candidate with a positive count in the header line
// wins.
var separatorPriority = []byte{'\t', ';', ',', '|', ' '}

// Parser drives an InputBuffer through separator guessing, tokenization,
// cell extraction, and row assembly, producing a RawFlatFile. A Parser is
// single-use: call Parse once.
type Parser struct {
	buf  *InputBuffer
	opts ParserOptions
	dict *trie.Trie

	columns               uint16
	separator             byte
	activeSeparator       byte
	spaceSeparatedHeaders bool
	headerLineDone        bool

	cells       []int32
	unexpected  []UnexpectedCell
	lineSize    int
	emptyPrefix int
	lineIndex   int
	colIndex    int
}

// NewParser builds a Parser reading from buf with the given options.
func NewParser(buf *InputBuffer, opts ParserOptions) (*Parser, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	return &Parser{
		buf:  buf,
		opts: opts,
		dict: trie.New(),
	}, nil
}

// Parse runs the full separator-guessing/tokenization/assembly pipeline to
// completion and returns the resulting RawFlatFile.
func (p *Parser) Parse() (*RawFlatFile, error) {
	if err := p.guessSeparator(); err != nil {
		return nil, err
	}
	if err := p.tokenizeAll(); err != nil {
		return nil, err
	}
	p.endLine()

	if len(p.cells) == 0 {
		p.columns = 0
	}

	// An empty cells array is never truncation, even if effectiveCellCap
	// would otherwise evaluate to 0 (columns is 0, so with a bounded
	// maxLineCount the columns*(maxLines+1) term collapses to 0).
	isTruncated := false
	if len(p.cells) > 0 {
		isTruncated = len(p.cells) >= p.opts.effectiveCellCap(int(p.columns))
	}

	rff := &RawFlatFile{
		Columns:               p.columns,
		Cells:                 p.cells,
		Content:               p.dict.Values(),
		Separator:             p.separator,
		SpaceSeparatedHeaders: p.spaceSeparatedHeaders,
		FileEncoding:          p.buf.FileEncoding,
		UnexpectedCells:       p.unexpected,
		IsTruncated:           isTruncated,
	}
	return rff, nil
}

// ensureAvailable refills buf until at least n bytes are available in the
// window or the stream is exhausted.
func (p *Parser) ensureAvailable(n int) error {
	for p.buf.End-p.buf.Start < n && !p.buf.AtEndOfStream() {
		if err := p.buf.Refill(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) guessSeparator() error {
	if err := p.skipLeadingWhitespace(); err != nil {
		return err
	}

	offset := 0
	for {
		pos := p.buf.Start + offset
		if pos >= p.buf.End {
			if p.buf.IsFull() {
				break
			}
			if err := p.buf.Refill(); err != nil {
				return err
			}
			continue
		}
		b := p.buf.Bytes[pos]
		if b == '\n' || b == '\r' {
			break
		}
		offset++
	}

	// Count separator candidates outside quoted spans only: a quoted cell's
	// internal separator bytes must not count toward the guess. A plain
	// toggle on '"' is enough — doubled "" escapes flip twice and cancel
	// out, landing back in the same quote state they started in.
	line := p.buf.Bytes[p.buf.Start : p.buf.Start+offset]
	counts := map[byte]int{}
	inQuote := false
	for _, b := range line {
		if b == '"' {
			inQuote = !inQuote
			continue
		}
		if !inQuote {
			counts[b]++
		}
	}

	var chosen byte
	for _, c := range separatorPriority {
		if counts[c] > 0 {
			chosen = c
			break
		}
	}

	switch {
	case chosen == 0:
		p.columns = 1
		p.separator = '\t'
		p.activeSeparator = '\t'
	case chosen == ' ':
		p.columns = uint16(counts[' '] + 1)
		p.separator = '\t'
		p.spaceSeparatedHeaders = true
		p.activeSeparator = ' '
	default:
		p.columns = uint16(counts[chosen] + 1)
		p.separator = chosen
		p.activeSeparator = chosen
	}
	return nil
}

func (p *Parser) skipLeadingWhitespace() error {
	for {
		if err := p.ensureAvailable(1); err != nil {
			return err
		}
		if p.buf.Start >= p.buf.End {
			return nil
		}
		b := p.buf.Bytes[p.buf.Start]
		if b == '\n' || b == '\r' || b == ' ' {
			p.buf.Start++
			continue
		}
		return nil
	}
}

func (p *Parser) reachedCap() bool {
	return len(p.cells) >= p.opts.effectiveCellCap(int(p.columns))
}

func (p *Parser) tokenizeAll() error {
	for {
		if p.reachedCap() {
			break
		}
		if p.buf.Start >= p.buf.End && p.buf.AtEndOfStream() {
			break
		}

		raw, nQuotes, term, err := p.scanCell()
		if err != nil {
			return err
		}
		extracted := extractCell(raw, nQuotes)
		id := p.dict.Hash(extracted)
		p.addCell(id, extracted)

		if term == '\n' || term == '\r' {
			p.endLine()
			if p.spaceSeparatedHeaders && !p.headerLineDone {
				p.activeSeparator = p.separator
			}
			p.headerLineDone = true
		}
	}
	return nil
}

// scanCell consumes one cell (and its terminator, if any) from buf,
// returning the raw (still-quoted) bytes capped at MaximalValueLength, the
// quote count (the opening quote, each doubled "" pair, and the closing quote
// count once each), and the terminator byte (0 on EOF or when the cell fills
// the buffer).
func (p *Parser) scanCell() (raw []byte, nQuotes int, term byte, err error) {
	inQuote := false
	offset := 0
	capped := -1

	for {
		pos := p.buf.Start + offset
		if pos >= p.buf.End {
			if p.buf.IsFull() || p.buf.AtEndOfStream() {
				break
			}
			if err = p.buf.Refill(); err != nil {
				return nil, 0, 0, err
			}
			continue
		}

		b := p.buf.Bytes[pos]
		switch {
		case inQuote && b == '"':
			nextPos := pos + 1
			if nextPos >= p.buf.End && !p.buf.IsFull() && !p.buf.AtEndOfStream() {
				if err = p.buf.Refill(); err != nil {
					return nil, 0, 0, err
				}
				continue
			}
			if nextPos < p.buf.End && p.buf.Bytes[nextPos] == '"' {
				nQuotes++
				offset += 2
			} else {
				nQuotes++
				offset++
				inQuote = false
			}
		case inQuote:
			offset++
		case offset == 0 && b == '"':
			inQuote = true
			nQuotes++
			offset++
		case b == '\n' || b == '\r' || b == p.activeSeparator:
			term = b
		default:
			offset++
		}

		if term != 0 {
			break
		}
		if capped < 0 && offset >= MaximalValueLength {
			capped = MaximalValueLength
		}
	}

	end := offset
	if capped >= 0 {
		end = capped
	}
	raw = p.buf.Bytes[p.buf.Start : p.buf.Start+end]
	p.buf.Start += offset
	if term != 0 {
		p.buf.Start++
	}
	return raw, nQuotes, term, nil
}

// extractCell strips outer quotes (if the raw slice was quoted), collapses
// any doubled "" escapes in place, and trims leading/trailing SPACE bytes.
func extractCell(raw []byte, nQuotes int) []byte {
	s, e := 0, len(raw)
	if nQuotes > 0 && e-s >= 2 && raw[e-1] == '"' {
		s++
		e--
		if nQuotes > 1 {
			e = collapseDoubledQuotes(raw, s, e)
		}
	}
	for s < e && raw[s] == ' ' {
		s++
	}
	for e > s && raw[e-1] == ' ' {
		e--
	}
	return raw[s:e]
}

// collapseDoubledQuotes shifts raw[s:e] leftward in place, replacing every
// "" pair with a single ", and returns the new end index.
func collapseDoubledQuotes(raw []byte, s, e int) int {
	w, i := s, s
	for i < e {
		if raw[i] == '"' && i+1 < e && raw[i+1] == '"' {
			raw[w] = '"'
			w++
			i += 2
			continue
		}
		raw[w] = raw[i]
		w++
		i++
	}
	return w
}

// addCell folds one cell's identifier into the current row, per the
// deferred-empty-prefix / overflow-to-unexpectedCells discipline.
func (p *Parser) addCell(id int32, raw []byte) {
	if id == 0 && p.lineSize == 0 {
		p.emptyPrefix++
		p.colIndex++
		return
	}

	if id != 0 {
		for p.emptyPrefix > 0 && p.lineSize < int(p.columns) {
			p.cells = append(p.cells, 0)
			p.lineSize++
			p.emptyPrefix--
		}
		p.emptyPrefix = 0
	}

	switch {
	case p.lineSize < int(p.columns):
		p.cells = append(p.cells, id)
		p.lineSize++
	case id != 0:
		p.unexpected = append(p.unexpected, UnexpectedCell{
			Line:   p.lineIndex,
			Column: p.colIndex,
			Bytes:  append([]byte(nil), raw...),
		})
	}
	p.colIndex++
}

func (p *Parser) endLine() {
	if p.lineSize > 0 {
		for p.lineSize < int(p.columns) {
			p.cells = append(p.cells, 0)
			p.lineSize++
		}
		p.lineIndex++
	}
	p.lineSize = 0
	p.emptyPrefix = 0
	p.colIndex = 0
}
