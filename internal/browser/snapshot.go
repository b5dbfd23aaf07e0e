package browser

import (
	"encoding/json"
	"fmt"
)

// DomNode is one interactive element of a DOM snapshot, per spec.md §3. Rect
// coordinates are CSS pixels relative to the viewport, matching
// getBoundingClientRect().
type DomNode struct {
	Tag        string            `json:"tag"`
	Text       string            `json:"text"`
	Attributes map[string]string `json:"attributes"`
	Rect       Rect              `json:"rect"`
}

// Rect is a CSS-pixel bounding box.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// domSnapshotScript runs in the page and returns a JSON array of DomNode,
// filtering to the interactive selector set spec.md §4.5 requires and
// keeping only elements with a positive bounding box that starts on-screen
// (top/left >= 0), and capturing only the fixed attribute set spec.md §3
// defines. Ported from original_source/tools/web_controller.py's
// extract_full_dom_with_bounding_rects, in the teacher's snapshot.go style
// of pushing extraction logic into an injected script rather than walking
// the accessibility tree from Go.
const domSnapshotScript = `() => {
  const sel = "a, button, input, textarea, [role=button], [role=link], [data-testid]";
  const attrNames = ["id", "class", "role", "aria-label", "data-testid", "name", "placeholder"];
  const nodes = [];
  for (const el of document.querySelectorAll(sel)) {
    const r = el.getBoundingClientRect();
    if (r.width <= 0 || r.height <= 0 || r.top < 0 || r.left < 0) continue;
    const attrs = {};
    for (const name of attrNames) {
      const v = el.getAttribute(name);
      if (v !== null) attrs[name] = v;
    }
    let text = (el.innerText || el.value || "").trim();
    if (text.length > 200) text = text.slice(0, 200);
    nodes.push({
      tag: el.tagName.toLowerCase(),
      text: text,
      attributes: attrs,
      rect: { x: r.x, y: r.y, w: r.width, h: r.height }
    });
  }
  return JSON.stringify(nodes);
}`

// Snapshot extracts the current interactive DOM tree as a flat list of
// DomNode, bounded to elements with a positive bounding box per spec.md
// §4.5's DOM extraction contract.
func (d *Driver) Snapshot() ([]DomNode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	raw, err := d.page.Evaluate(domSnapshotScript)
	if err != nil {
		return nil, fmt.Errorf("browser: snapshot dom: %w", err)
	}

	str, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("browser: snapshot dom: unexpected evaluate result type %T", raw)
	}

	var nodes []DomNode
	if err := json.Unmarshal([]byte(str), &nodes); err != nil {
		return nil, fmt.Errorf("browser: snapshot dom: decode: %w", err)
	}
	return nodes, nil
}
