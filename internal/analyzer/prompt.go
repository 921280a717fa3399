package analyzer

// momentPrompt forces the model into a line-oriented grammar the parser
// can scan, with timestamps relative to the clip it is shown (never the
// full source video).
const momentPrompt = `You are analyzing a short video clip that is part of a longer video.

Identify the most important, engaging, or highlight-worthy moments in this clip.
For each such moment, give:
- start time in seconds (within this clip, 0 = start of clip)
- end time in seconds (within this clip)
- a short reason or label (e.g. "goal scored", "key save", "celebration")

Output format: exactly one line per moment:
MOMENT: start_sec end_sec reason_or_label

Use decimal seconds if needed (e.g. 12.5 18.0). If there are no clear highlight moments in this clip, reply with exactly:
NONE

Do not include any other text or headers. Only lines in the form "MOMENT: start_sec end_sec description" or the word NONE.`
