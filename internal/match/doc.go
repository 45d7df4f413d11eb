// Package match computes which battles are relevant to which guild.
// Entity matching (ForGuild) intersects a battle's participant id keys with
// the guild's tracked sets; an optional compiled CEL filter narrows the
// result further. Both preserve the store's oldest-first ordering.
package match
