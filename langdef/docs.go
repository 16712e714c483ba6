/*
Package langdef analyzes LL(1) grammars and converts textual grammar descriptions to grammar.Grammar structure.

Analyze computes First, Follow, and Select sets, Analysis.Table and BuildTable build prediction tables.

Grammar description is a sequence of directives followed by production definitions:

	# comment up to the end of line
	!start E;              # start symbol, the first defined nonterminal by default
	!term + * ( ) num;     # terminals, every symbol never defined by default
	E  = T E';
	E' = + T E' | @;

Description must be a printable ASCII text. Spaces, tabs, carriage returns, form feeds, and line feeds
separate symbols, line breaks are insignificant.

Symbol is a sequence of printable ASCII characters except for space, ";", "|", "=", and "#",
not starting with "!". Symbols are case-sensitive. Symbol "@" denotes empty right side and must be the only
symbol of its alternative.

Definition has a form:

	nonterminal = symbol {symbol} {"|" symbol {symbol}} ;

Each alternative becomes a separate production. A nonterminal may be defined more than once,
its productions are appended in definition order.

Directives must precede definitions, each directive may be used once:

!start directive names the start symbol.

!term directive lists terminals in the order used for sets and table columns.
Without it terminals are collected in order of their first appearance.
With it every symbol must be either a listed terminal or a defined nonterminal.
*/
package langdef
