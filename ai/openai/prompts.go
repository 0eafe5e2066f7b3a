package openai

const criteriaResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "variants": {
      "type": "array",
      "minItems": 5,
      "maxItems": 5,
      "items": {
        "type": "object",
        "properties": {
          "companies": {
            "type": "array",
            "items": {"type": "string"}
          },
          "role_keywords": {
            "type": "array",
            "items": {"type": "string"}
          },
          "employment_status": {
            "type": "string",
            "enum": ["current", "former", "any"]
          },
          "reasoning": {
            "type": "string"
          }
        },
        "required": ["companies", "role_keywords", "employment_status", "reasoning"],
        "additionalProperties": false
      }
    }
  },
  "required": ["variants"],
  "additionalProperties": false
}`

const criteriaPromptTemplate = `Convert the user's expert-search request into structured people-search criteria and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Extract ONLY company names and role keywords that are present in the request or unambiguously implied by it. Never invent companies.
- Expand well-known group aliases into their member firms:
  - "Big 5" / "big five" executive search firms: Korn Ferry, Russell Reynolds, Heidrick & Struggles, Spencer Stuart, Egon Zehnder.
  - "MBB" / top-tier consulting: McKinsey & Company, Bain & Company, Boston Consulting Group.
  - Common IT reseller abbreviations: CDW, SHI International, Insight Enterprises.
- For each company, also include common name variants: legal-entity suffixes (Inc, LLC, & Company), shortened forms, and well-known subsidiary names.
- employment_status is "former" when the request asks for people who have left ("former", "ex-"), "current" when it asks for people still in seat, otherwise "any".
- Return EXACTLY five variants, ordered best-guess first, covering these five angles:
  1. All extracted companies with broad role keywords.
  2. The primary companies with the most specific role keywords.
  3. Name-variant coverage: alternate spellings and legal forms of the same companies.
  4. Secondary or adjacent companies implied by the request.
  5. An employment-status-focused variant.
- Each variant's reasoning is one short sentence explaining the angle.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "former Google engineering VPs"
Output:
{
  "variants": [
    {"companies":["Google","Google LLC","Alphabet"],"role_keywords":["VP","Vice President","Engineering"],"employment_status":"former","reasoning":"All named companies with broad engineering leadership roles."},
    {"companies":["Google"],"role_keywords":["VP of Engineering","Vice President Engineering"],"employment_status":"former","reasoning":"Primary company with the most specific titles."},
    {"companies":["Google LLC","Alphabet Inc"],"role_keywords":["VP","Engineering"],"employment_status":"former","reasoning":"Name-variant coverage for the same organization."},
    {"companies":["YouTube","DeepMind"],"role_keywords":["VP","Engineering"],"employment_status":"former","reasoning":"Well-known subsidiaries as adjacent companies."},
    {"companies":["Google"],"role_keywords":["VP","Director","Engineering"],"employment_status":"former","reasoning":"Status-focused variant emphasizing departed leadership."}
  ]
}`

const expansionPromptTemplate = `You expand interview research topics into search terms.

Given a topic, return 5-10 short synonyms and closely related concepts, one per line, with no numbering,
no punctuation, and no commentary. Terms must be usable for literal substring matching against short
interview question and answer text, so prefer single words and two-word phrases actually used in
business conversation.

Example:
Input: "vendor consolidation"
Output:
vendor consolidation
procurement
sourcing
supplier rationalization
vendor management
purchasing`

const synthesisPromptTemplate = `You are an analyst summarizing expert interview excerpts for a decision maker.

You will receive a set of question/answer exchanges from expert interviews, each with optional
credibility (0-10) and consensus (0-10) scores, plus aggregate statistics over the set.

Produce a concise narrative with these sections:
- Key findings
- Points of consensus
- Points of disagreement
- Credibility assessment
- Decision-relevant implications

Ground every statement in the provided excerpts. Do not invent facts. If the excerpts are too thin to
support a section, say so in one line.`
