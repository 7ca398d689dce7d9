// Package urlreplacers rewrites root relative URLs in published output.
package urlreplacers

import (
	"bytes"
	"strings"

	"github.com/sunwei/blogsite/transform"
)

var attributes = [][]byte{[]byte(`href="/`), []byte(`src="/`), []byte(`href='/`), []byte(`src='/`)}

// NewAbsURLTransformer replaces root relative URLs in href and src
// attributes with absolute ones below baseURL. Protocol relative URLs (//)
// are left alone.
func NewAbsURLTransformer(baseURL string) transform.Transformer {
	base := []byte(strings.TrimSuffix(baseURL, "/") + "/")

	return func(ft transform.FromTo) error {
		content := ft.From().Bytes()
		for _, attr := range attributes {
			content = replaceAttr(content, attr, base)
		}
		_, err := ft.To().Write(content)
		return err
	}
}

func replaceAttr(content, attr, base []byte) []byte {
	if !bytes.Contains(content, attr) {
		return content
	}

	var buf bytes.Buffer
	prefix := attr[:len(attr)-1]

	for {
		i := bytes.Index(content, attr)
		if i == -1 {
			buf.Write(content)
			break
		}
		buf.Write(content[:i])
		rest := content[i+len(attr):]
		if len(rest) > 0 && rest[0] == '/' {
			// Protocol relative.
			buf.Write(attr)
		} else {
			buf.Write(prefix)
			buf.Write(base)
		}
		content = rest
	}

	return buf.Bytes()
}
