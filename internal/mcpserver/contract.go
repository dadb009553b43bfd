package mcpserver

// PipelineStageContract describes the canonical pipeline stages that
// LLM consumers should use when transitioning candidates.
const PipelineStageContract = `# Pipeline Stage Contract

Every candidate is in exactly one of these stages at any time. Use the
stage identifier (left column) with the transition_stage tool; the label
is what humans see in the UI.

| Identifier | Label                |
|------------|----------------------|
| new        | New                  |
| screening  | Screening            |
| interview  | Interview            |
| technical  | Technical Assessment |
| final      | Final Interview      |
| offer      | Offer                |
| hired      | Hired                |
| rejected   | Rejected             |

## Rules

1. **Any stage may move to any other stage.** Recruiters routinely skip
   stages or move candidates backwards; the system records the move as-is.
2. **hired and rejected are terminal by convention.** The system does not
   block transitions out of them, but moving a candidate out of a terminal
   stage should be deliberate, not routine.
3. **Scheduling an interview nudges early candidates forward.** A candidate
   in new or screening is moved to interview automatically when an
   interview is scheduled for them. Candidates already at interview or
   later are never moved by scheduling.
4. **Stage identifiers are lowercase.** "Offer" or "OFFER" are rejected;
   use "offer".
5. **Unknown identifiers are rejected** and the candidate's stage does
   not change.
`
