package render

import "fmt"

// shellTemplate is the fixed page every verse fragment is loaded into.
// The font and image rules only matter to renderers that honor CSS; the
// terminal layout ignores them but the document structure is the same.
const shellTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0, maximum-scale=1.0, user-scalable=no">
<style>
@font-face { font-family: "Verse"; font-style: normal; src: local("Georgia"); }
@font-face { font-family: "Verse"; font-style: italic; src: local("Georgia Italic"); }
body { font-family: "Verse", serif; margin: 0; padding: 0; }
img { max-width: 100%%; height: auto; }
</style>
</head>
<body>%s</body>
</html>`

// Shell wraps an HTML fragment in the fixed page shell.
func Shell(fragment string) string {
	return fmt.Sprintf(shellTemplate, fragment)
}
