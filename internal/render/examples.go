package render

// Examples shown by the editor's "Show Example" actions.
const (
	ExampleMarkdown = "# Welcome to Markpad\n\n" +
		"## A markdown editor with live preview\n\n" +
		"You can write:\n- **Bold text**\n- *Italic text*\n- ~~Strikethrough~~\n\n" +
		"### Code blocks\n```go\nfunc hello() {\n\tfmt.Println(\"Hello, world!\")\n}\n```\n\n" +
		"### Tables\n| Feature | Description |\n|---------|-------------|\n" +
		"| Tables | Supported with GFM |\n| Lists | Ordered and unordered |\n" +
		"| Links | [Click here](https://example.com) |\n\n" +
		"> Blockquotes are also supported\n"

	ExampleAnimation = `<svg width="200" height="200" viewBox="0 0 200 200" xmlns="http://www.w3.org/2000/svg">
  <circle cx="100" cy="100" r="50" fill="#6366F1">
    <animate attributeName="r" values="50;70;50" dur="2s" repeatCount="indefinite" />
    <animate attributeName="fill" values="#6366F1;#8B5CF6;#6366F1" dur="2s" repeatCount="indefinite" />
  </circle>
</svg>`

	ExampleDiagram = `graph TD
    A[Start] --> B{Is it working?}
    B -->|Yes| C[Great!]
    B -->|No| D[Debug]
    D --> B`
)
