// Package parser - tokenizer implementation for interface files
package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota

	// Literals
	TokenIdentifier
	TokenNumber
	TokenString

	// Operators and punctuation
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenSemicolon    // ;
	TokenColon        // :
	TokenDoubleColon  // ::
	TokenComma        // ,
	TokenDot          // .
	TokenEquals       // =
	TokenDoubleEquals // ==
	TokenNotEquals    // !=
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=
	TokenLeftShift    // <<
	TokenPlus         // +
	TokenMinus        // -
	TokenStar         // *
	TokenSlash        // /
	TokenAmpersand    // &
	TokenHash         // #

	// Keywords
	TokenKeywordStart // Marker for start of keywords
	TokenNamespace
	TokenClass
	TokenVirtual
	TokenStatic
	TokenConst
	TokenEnum
	TokenTemplate
	TokenTypedef
	TokenOperator
	TokenPair
	TokenKeywordEnd // Marker for end of keywords
)

// tokenTypeNames maps token types to their names for diagnostics
var tokenTypeNames = map[TokenType]string{
	TokenEOF:          "end of file",
	TokenIdentifier:   "identifier",
	TokenNumber:       "number",
	TokenString:       "string literal",
	TokenLeftParen:    "'('",
	TokenRightParen:   "')'",
	TokenLeftBrace:    "'{'",
	TokenRightBrace:   "'}'",
	TokenLeftBracket:  "'['",
	TokenRightBracket: "']'",
	TokenSemicolon:    "';'",
	TokenColon:        "':'",
	TokenDoubleColon:  "'::'",
	TokenComma:        "','",
	TokenDot:          "'.'",
	TokenEquals:       "'='",
	TokenDoubleEquals: "'=='",
	TokenNotEquals:    "'!='",
	TokenLess:         "'<'",
	TokenGreater:      "'>'",
	TokenLessEqual:    "'<='",
	TokenGreaterEqual: "'>='",
	TokenLeftShift:    "'<<'",
	TokenPlus:         "'+'",
	TokenMinus:        "'-'",
	TokenStar:         "'*'",
	TokenSlash:        "'/'",
	TokenAmpersand:    "'&'",
	TokenHash:         "'#'",
	TokenNamespace:    "'namespace'",
	TokenClass:        "'class'",
	TokenVirtual:      "'virtual'",
	TokenStatic:       "'static'",
	TokenConst:        "'const'",
	TokenEnum:         "'enum'",
	TokenTemplate:     "'template'",
	TokenTypedef:      "'typedef'",
	TokenOperator:     "'operator'",
	TokenPair:         "'pair'",
}

// Keywords map for quick lookup
var keywords = map[string]TokenType{
	"namespace": TokenNamespace,
	"class":     TokenClass,
	"virtual":   TokenVirtual,
	"static":    TokenStatic,
	"const":     TokenConst,
	"enum":      TokenEnum,
	"template":  TokenTemplate,
	"typedef":   TokenTypedef,
	"operator":  TokenOperator,
	"pair":      TokenPair,
}

// Token represents a single token
type Token struct {
	Type   TokenType
	Value  string
	Line   int
	Column int
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenIdentifier, TokenNumber, TokenString:
		return fmt.Sprintf("%s %q", tokenTypeNames[t.Type], t.Value)
	default:
		return tokenTypeNames[t.Type]
	}
}

// Describe names a token type for error messages
func (tt TokenType) Describe() string {
	if name, ok := tokenTypeNames[tt]; ok {
		return name
	}
	return "token"
}

// Tokenizer represents the tokenizer state. Whitespace and comments are
// consumed and discarded; the parser sees a clean token stream.
type Tokenizer struct {
	input   string
	pos     int // current position in input
	line    int // current line number
	column  int // current column number
	width   int // width of last rune read
	start   int // start position of current token
	startLn int // line of current token start
	startCl int // column of current token start
	tokens  []Token
}

// NewTokenizer creates a new tokenizer
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{
		input:  input,
		line:   1,
		column: 1,
		tokens: make([]Token, 0, 256),
	}
}

// next reads the next rune and advances position
func (t *Tokenizer) next() rune {
	if t.pos >= len(t.input) {
		t.width = 0
		return 0
	}

	r, w := utf8.DecodeRuneInString(t.input[t.pos:])
	t.width = w
	t.pos += w

	if r == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}

	return r
}

// backup steps back one rune
func (t *Tokenizer) backup() {
	t.pos -= t.width
	if t.pos < len(t.input) && t.input[t.pos] == '\n' {
		t.line--
		col := 1
		for i := t.pos - 1; i >= 0 && t.input[i] != '\n'; i-- {
			col++
		}
		t.column = col
	} else {
		t.column--
	}
}

// peek returns the next rune without advancing position
func (t *Tokenizer) peek() rune {
	r := t.next()
	if r != 0 {
		t.backup()
	}
	return r
}

// emit creates a token from the current slice and adds it to the stream
func (t *Tokenizer) emit(tokenType TokenType) {
	t.tokens = append(t.tokens, Token{
		Type:   tokenType,
		Value:  t.input[t.start:t.pos],
		Line:   t.startLn,
		Column: t.startCl,
	})
	t.start = t.pos
}

// errorf builds a LexError anchored at the start of the current token
func (t *Tokenizer) errorf(format string, args ...interface{}) *LexError {
	return &LexError{
		Message: fmt.Sprintf(format, args...),
		Line:    t.startLn,
		Column:  t.startCl,
	}
}

// Tokenize processes the input and returns the token stream. The first
// malformed construct aborts tokenization with a LexError.
func (t *Tokenizer) Tokenize() ([]Token, error) {
	for t.pos < len(t.input) {
		t.start = t.pos
		t.startLn = t.line
		t.startCl = t.column

		r := t.next()

		switch {
		case r == 0:
			break

		case unicode.IsSpace(r):
			t.start = t.pos

		case r == '/':
			ok, err := t.scanComment()
			if err != nil {
				return nil, err
			}
			if !ok {
				t.emit(TokenSlash)
			}

		case r == '"':
			if err := t.scanString(); err != nil {
				return nil, err
			}

		case unicode.IsLetter(r) || r == '_':
			t.scanIdentifier()

		case unicode.IsDigit(r):
			if err := t.scanNumber(); err != nil {
				return nil, err
			}

		default:
			if err := t.scanOperator(r); err != nil {
				return nil, err
			}
		}
	}

	t.tokens = append(t.tokens, Token{Type: TokenEOF, Line: t.line, Column: t.column})
	return t.tokens, nil
}

// scanComment consumes a // or /* comment. Returns false when the slash was
// not the start of a comment.
func (t *Tokenizer) scanComment() (bool, error) {
	switch t.peek() {
	case '/':
		for {
			r := t.next()
			if r == 0 {
				break
			}
			if r == '\n' {
				break
			}
		}
		t.start = t.pos
		return true, nil

	case '*':
		t.next() // consume '*'
		for {
			r := t.next()
			if r == 0 {
				return false, t.errorf("unterminated block comment")
			}
			if r == '*' && t.peek() == '/' {
				t.next() // consume '/'
				break
			}
		}
		t.start = t.pos
		return true, nil
	}

	return false, nil
}

// scanString scans a string literal used as a default argument
func (t *Tokenizer) scanString() error {
	for {
		r := t.next()
		if r == 0 || r == '\n' {
			return t.errorf("unterminated string literal")
		}
		if r == '"' {
			break
		}
		if r == '\\' {
			if t.next() == 0 {
				return t.errorf("unterminated string literal")
			}
		}
	}
	t.emit(TokenString)
	return nil
}

// scanIdentifier scans an identifier or keyword
func (t *Tokenizer) scanIdentifier() {
	for {
		r := t.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		t.next()
	}

	value := t.input[t.start:t.pos]
	if tokenType, isKeyword := keywords[value]; isKeyword {
		t.emit(tokenType)
	} else {
		t.emit(TokenIdentifier)
	}
}

// scanNumber scans an integer or floating-point literal
func (t *Tokenizer) scanNumber() error {
	for unicode.IsDigit(t.peek()) {
		t.next()
	}
	if t.peek() == '.' {
		t.next()
		if !unicode.IsDigit(t.peek()) {
			return t.errorf("malformed numeric literal")
		}
		for unicode.IsDigit(t.peek()) {
			t.next()
		}
	}
	if r := t.peek(); r == 'e' || r == 'E' {
		t.next()
		if r := t.peek(); r == '+' || r == '-' {
			t.next()
		}
		if !unicode.IsDigit(t.peek()) {
			return t.errorf("malformed numeric literal")
		}
		for unicode.IsDigit(t.peek()) {
			t.next()
		}
	}
	t.emit(TokenNumber)
	return nil
}

// scanOperator scans operators and punctuation
func (t *Tokenizer) scanOperator(r rune) error {
	switch r {
	case '(':
		t.emit(TokenLeftParen)
	case ')':
		t.emit(TokenRightParen)
	case '{':
		t.emit(TokenLeftBrace)
	case '}':
		t.emit(TokenRightBrace)
	case '[':
		t.emit(TokenLeftBracket)
	case ']':
		t.emit(TokenRightBracket)
	case ';':
		t.emit(TokenSemicolon)
	case ',':
		t.emit(TokenComma)
	case '.':
		t.emit(TokenDot)
	case '+':
		t.emit(TokenPlus)
	case '-':
		t.emit(TokenMinus)
	case '*':
		t.emit(TokenStar)
	case '&':
		t.emit(TokenAmpersand)
	case '#':
		t.emit(TokenHash)

	case ':':
		if t.peek() == ':' {
			t.next()
			t.emit(TokenDoubleColon)
		} else {
			t.emit(TokenColon)
		}

	case '=':
		if t.peek() == '=' {
			t.next()
			t.emit(TokenDoubleEquals)
		} else {
			t.emit(TokenEquals)
		}

	case '!':
		if t.peek() == '=' {
			t.next()
			t.emit(TokenNotEquals)
		} else {
			return t.errorf("unexpected character: %c", r)
		}

	case '<':
		switch t.peek() {
		case '=':
			t.next()
			t.emit(TokenLessEqual)
		case '<':
			t.next()
			t.emit(TokenLeftShift)
		default:
			t.emit(TokenLess)
		}

	case '>':
		if t.peek() == '=' {
			t.next()
			t.emit(TokenGreaterEqual)
		} else {
			t.emit(TokenGreater)
		}

	default:
		return t.errorf("unexpected character: %c", r)
	}

	return nil
}
