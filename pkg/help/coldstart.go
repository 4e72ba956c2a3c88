// Package help holds the quick-start text printed by `smart-reader coldstart`.
package help

const ColdstartYAML = `# smart-reader Quick Start

hosts:
  watch: "Live Chrome tab with the floating TL;DR control"
  static: "Fetched or local HTML, no scripts (extract, summarize)"

service:
  backends:
    auto: "hf when HF_TOKEN is set, else openai when OPENAI_API_KEY is set, else local"
    hf: "Hugging Face inference API"
    openai: "Any OpenAI-compatible chat endpoint"
    local: "Extractive summary, no network"
  endpoints:
    - "GET /"
    - "GET /health"
    - "POST /summarize {text, ratio, level, do_sample}"

commands:
  start_service: |
    smart-reader serve --backend local

  extract_article: |
    smart-reader extract --url "https://en.wikipedia.org/wiki/Go_(programming_language)"

  summarize_in_terminal: |
    smart-reader summarize --url "https://example.com/post" --copy

  summarize_as_yaml: |
    smart-reader summarize --url "https://example.com/post" --format yaml

  live_control: |
    smart-reader watch --url "https://www.reddit.com/r/golang/"

  hide_control: |
    smart-reader toggle off

tips:
  - "--level concise gives shorter summaries; --ratio sets length for level ratio"
  - "--file page.html --url https://host/path extracts saved pages with site rules"
  - "Fetched pages are cached for --page-ttl; summaries for --cache-ttl on the service"
  - "Use --quiet to only see errors, --verbose for debug logs (JSON on stderr)"
`
