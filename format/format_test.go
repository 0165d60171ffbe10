package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/ddoc/design"
	"github.com/dhamidi/ddoc/document"
	"github.com/dhamidi/ddoc/profile"
)

const sample = `package shop;

/**
 * 注文.
 * @author alice, bob
 */
public class Order {
	/// 合計金額
	private int total = 0;

	/**
	 * 加算する.
	 * @param n 数量
	 * @return 合計
	 */
	int add(int n) {
		/// # 入力チェック
		/// [入力] 数量 = n
		if (n < 0) {
			/// 負数は拒否
			throw new IllegalArgumentException();
		}
		switch (n) {
		/// ゼロ
		case 0:
		case 1:
			break;
		}
		return total;
	}
}
`

func parseSample(t *testing.T) *document.Document {
	t.Helper()
	doc, err := design.Parse([]byte(sample), profile.Java(), design.WithFile("Order.java"))
	require.NoError(t, err)
	return doc
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		enc, err := New(name, &bytes.Buffer{})
		require.NoError(t, err, name)
		assert.NotNil(t, enc)
	}
	_, err := New("pdf", &bytes.Buffer{})
	assert.Error(t, err)

	assert.Equal(t, ".md", Extension("markdown"))
	assert.Equal(t, ".html", Extension("html"))
	assert.Equal(t, ".json", Extension("json"))
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(parseSample(t)))

	var out struct {
		File     string `json:"file"`
		Package  string `json:"package"`
		Sections []struct {
			Kind     string `json:"kind"`
			Name     string `json:"name"`
			Children []struct {
				Kind      string `json:"kind"`
				Narrative []struct {
					Kind string `json:"kind"`
					Text string `json:"text"`
				} `json:"narrative"`
			} `json:"children"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "Order.java", out.File)
	assert.Equal(t, "shop", out.Package)
	require.Len(t, out.Sections, 1)
	assert.Equal(t, "type", out.Sections[0].Kind)
	require.Len(t, out.Sections[0].Children, 2)
	field := out.Sections[0].Children[0]
	assert.Equal(t, "field", field.Kind)
	require.Len(t, field.Narrative, 1)
	assert.Equal(t, "text", field.Narrative[0].Kind)
	assert.Equal(t, "合計金額", field.Narrative[0].Text)
}

func TestMarkdownEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownEncoder(&buf).Encode(parseSample(t)))
	md := buf.String()

	assert.Contains(t, md, "# Order.java\n")
	assert.Contains(t, md, "Package `shop`")
	assert.Contains(t, md, "## class Order\n\n`public class Order`\n")
	assert.Contains(t, md, "- author alice, bob\n")
	assert.Contains(t, md, "### field total\n\n`private int total = 0`\n\n合計金額\n")
	assert.Contains(t, md, "### method add\n\n`int add(int n)`\n\n加算する.\n\n- param `n` 数量\n- returns 合計\n")
	assert.Contains(t, md, "##### if (n < 0)\n\n###### 入力チェック\n\n- [入力] `数量` = `n`\n")
	assert.Contains(t, md, "###### statement throw\n\n`throw new IllegalArgumentException()`\n\n負数は拒否\n")
	assert.Contains(t, md, "#### switch (n)\n")
	assert.Contains(t, md, "##### case 0, 1\n\nゼロ\n")
	assert.Contains(t, md, "#### statement return\n\n`return total`\n")
}

func TestMarkdownNarrativeRuns(t *testing.T) {
	doc, err := design.Parse([]byte(`class A {
	/// 一行目
	/// 二行目
	/// a = 1
	/// b = 2
	/// if 成功
	void m() {}
}`), profile.Java())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewMarkdownEncoder(&buf).Encode(doc))
	assert.Contains(t, buf.String(), "一行目\n二行目\n\n- `a` = `1`\n- `b` = `2`\n\n**if** 成功\n\n")
}

func TestHTMLEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewHTMLEncoder(&buf).Encode(parseSample(t)))
	html := buf.String()

	assert.Contains(t, html, "<title>Order.java</title>")
	assert.Contains(t, html, ">class Order</h2>")
	assert.Contains(t, html, "<li>author alice, bob</li>")
	assert.Contains(t, html, "<code>数量</code>")
	assert.Contains(t, html, "</body>\n</html>\n")
}
