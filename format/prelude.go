package format

// prelude is written ahead of every declaration file. Each line starting with
// the placeholder is a top level declaration and receives the visibility
// keyword.
var prelude = []string{
	"@type int = number;",
	"@type float = number;",
	"@type double = number;",
	"",
	"@type Dictionary<T> = { [key: string]: T };",
	"",
	"@interface Copying {",
	"    copy(): Copying;",
	"}",
	"",
	"@interface Animatable extends Copying {",
	"    interpolatedValueToFraction(value: Animatable, fraction: number): Animatable;",
	"}",
}

const keywordPlaceholder = "@"
