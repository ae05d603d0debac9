package mcpserver

// LogFormatContract describes the journal layout the parser understands.
// LLM consumers should follow it when writing new entries.
const LogFormatContract = `# moodlog Journal Format

A journal is plain text holding daily logs and weekly reviews. Each entry is a
paragraph block separated from the previous one by at least one blank line.

## Daily log

` + "```" + `text
Monday, March 6, 2023
Mood: 8/10
Focus: 7.5/10
Achievements:
- Finished the quarterly report
- Went for a run
Challenges:
- Too many meetings
Notes: Productive start to the week.
` + "```" + `

## Weekly review

` + "```" + `text
Week of March 6-12, 2023
Overall mood: 7/10
Overall productivity: 6.5/10
Key achievements:
- Shipped the report
Challenges:
- Meetings ate focus time
Goals for next week:
- Block two mornings for deep work
` + "```" + `

## Rules

1. **Headers start a block.** A daily block begins with ` + "`" + `<Weekday>, <Month> <D>, <YYYY>` + "`" + `
   (full English weekday and month names); a weekly block begins with
   ` + "`" + `Week of <Month> <D>-<D>, <YYYY>` + "`" + `. A blank line must precede every header.
2. **Labels are case-sensitive** and end with a colon: ` + "`" + `Mood:` + "`" + `, ` + "`" + `Focus:` + "`" + `,
   ` + "`" + `Achievements:` + "`" + `, ` + "`" + `Challenges:` + "`" + `, ` + "`" + `Notes:` + "`" + `, ` + "`" + `Overall mood:` + "`" + `,
   ` + "`" + `Overall productivity:` + "`" + `, ` + "`" + `Key achievements:` + "`" + `, ` + "`" + `Goals for next week:` + "`" + `.
3. **Ratings** are written ` + "`" + `<n>/10` + "`" + ` where n may have a decimal part.
4. **Lists** put one item per line, each starting with ` + "`" + `-` + "`" + `. Keep the label order shown
   above: a list runs until the next label in that order.
5. **Notes** and **Goals for next week** end at the next blank line.
6. Every field is optional; a block with no recognised field is ignored.
7. Analyses written back to the document appear as ` + "`" + `Weekly Analysis` + "`" + ` /
   ` + "`" + `Monthly Analysis` + "`" + ` sections at the end of the file.
`
