package schema

// Players is the category layout of the player attribute export. "Nat.1" is
// the second "Nat" column of the export (natural fitness), renamed on read.
// "Transfer Value" is pruned before grouping; its parsed counterpart
// "Transfer Value Clean" takes its place in General.
var Players = Categorized{
	{Name: "General", Fields: []string{
		"UID", "Name", "Rec", "DOB", "Inf", "Club", "Based", "Nat", "Height",
		"Weight", "Age", "Position", "Transfer Value", "Transfer Value Clean",
		"Preferred Foot",
		"Left Foot", "Right Foot",
	}},
	{Name: "Matches", Fields: []string{
		"Imp M", "Caps", "AT Apps", "AT Gls", "AT Lge Apps", "AT Lge Gls",
		"Team", "Yth Apps", "Yth Gls",
	}},
	{Name: "Physical", Fields: []string{
		"Acc", "Str", "Sta", "Pac", "Nat.1", "Jum", "Bal", "Agi",
	}},
	{Name: "Mental", Fields: []string{
		"Wor", "Vis", "Tea", "OtB", "Ldr", "Fla", "Cnt", "Cmp", "Bra", "Ant",
		"Agg", "Dec", "Det", "Pos",
	}},
	{Name: "Goalkeeping", Fields: []string{
		"Thr", "TRO", "Ref", "Pun", "1v1", "Kic", "Han", "Ecc", "Cmd", "Aer",
		"Com",
	}},
	{Name: "Technical", Fields: []string{
		"Tec", "Tck", "Pen", "Pas", "Mar", "L Th", "Lon", "Hea", "Fre", "Fir",
		"Fin", "Dri", "Cro", "Cor",
	}},
	{Name: "Other", Fields: []string{
		"Vers", "Temp", "Spor", "Prof", "Pres", "Loy", "Dirt", "Amb", "Ada",
		"Cons",
	}},
	{Name: "Injury", Fields: []string{"Rc Injury", "Inj Pr"}},
	{Name: "Media", Fields: []string{"Media Description", "Media Handling", "Cont"}},
}
