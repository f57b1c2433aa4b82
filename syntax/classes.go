package syntax

import "github.com/jclyne/pattern-scanner/expr"

// POSIX character classes over the ASCII alphabet, keyed by bracket name.
// The shorthand escapes (\d, \w, ...) alias entries of this table.
var posixClasses = map[string]expr.CharSet{
	"alnum": expr.NewCharSet(
		expr.RuneRange{Lo: '0', Hi: '9'},
		expr.RuneRange{Lo: 'A', Hi: 'Z'},
		expr.RuneRange{Lo: 'a', Hi: 'z'},
	),
	"word": expr.NewCharSet(
		expr.RuneRange{Lo: '0', Hi: '9'},
		expr.RuneRange{Lo: 'A', Hi: 'Z'},
		expr.RuneRange{Lo: '_', Hi: '_'},
		expr.RuneRange{Lo: 'a', Hi: 'z'},
	),
	"alpha": expr.NewCharSet(
		expr.RuneRange{Lo: 'A', Hi: 'Z'},
		expr.RuneRange{Lo: 'a', Hi: 'z'},
	),
	"blank": expr.NewCharSet(
		expr.RuneRange{Lo: '\t', Hi: '\t'},
		expr.RuneRange{Lo: ' ', Hi: ' '},
	),
	"cntrl": expr.NewCharSet(
		expr.RuneRange{Lo: 0x00, Hi: 0x1f},
		expr.RuneRange{Lo: 0x7f, Hi: 0x7f},
	),
	"digit": expr.NewCharSet(
		expr.RuneRange{Lo: '0', Hi: '9'},
	),
	"graph": expr.NewCharSet(
		expr.RuneRange{Lo: 0x21, Hi: 0x7e},
	),
	"lower": expr.NewCharSet(
		expr.RuneRange{Lo: 'a', Hi: 'z'},
	),
	"print": expr.NewCharSet(
		expr.RuneRange{Lo: 0x20, Hi: 0x7e},
	),
	"punct": expr.NewCharSet(
		expr.RuneRange{Lo: '!', Hi: '/'},
		expr.RuneRange{Lo: ':', Hi: '@'},
		expr.RuneRange{Lo: '[', Hi: '`'},
		expr.RuneRange{Lo: '{', Hi: '~'},
	),
	"space": expr.NewCharSet(
		expr.RuneRange{Lo: '\t', Hi: '\r'},
		expr.RuneRange{Lo: ' ', Hi: ' '},
	),
	"upper": expr.NewCharSet(
		expr.RuneRange{Lo: 'A', Hi: 'Z'},
	),
	"xdigit": expr.NewCharSet(
		expr.RuneRange{Lo: '0', Hi: '9'},
		expr.RuneRange{Lo: 'A', Hi: 'F'},
		expr.RuneRange{Lo: 'a', Hi: 'f'},
	),
}

// shorthandClasses maps the backslash class escapes to (class, negated).
var shorthandClasses = map[rune]struct {
	name string
	neg  bool
}{
	'd': {"digit", false},
	'D': {"digit", true},
	'w': {"word", false},
	's': {"space", false},
	'S': {"space", true},
	'a': {"alpha", false},
	'x': {"xdigit", false},
}

// controlEscapes maps the literal control escapes to their runes.
var controlEscapes = map[rune]rune{
	'b': '\b',
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
}
