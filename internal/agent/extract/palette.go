package extract

// paletteColor is a named color and the basic color family it belongs to.
type paletteColor struct {
	Name   string
	Family string
}

// palette is the fixed vocabulary of color names users tend to type.
var palette = []paletteColor{
	{"red", "red"}, {"crimson", "red"}, {"scarlet", "red"}, {"ruby", "red"},
	{"cherry", "red"}, {"burgundy", "red"}, {"maroon", "red"}, {"wine", "red"},
	{"oxblood", "red"}, {"brick red", "red"},

	{"pink", "pink"}, {"blush", "pink"}, {"rose", "pink"}, {"hot pink", "pink"},
	{"fuchsia", "pink"}, {"magenta", "pink"}, {"salmon", "pink"}, {"dusty rose", "pink"},
	{"baby pink", "pink"}, {"bubblegum", "pink"},

	{"orange", "orange"}, {"coral", "orange"}, {"peach", "orange"}, {"apricot", "orange"},
	{"tangerine", "orange"}, {"rust", "orange"}, {"terracotta", "orange"}, {"burnt orange", "orange"},

	{"yellow", "yellow"}, {"mustard", "yellow"}, {"lemon", "yellow"}, {"canary", "yellow"},
	{"butter", "yellow"}, {"saffron", "yellow"}, {"ochre", "yellow"},

	{"green", "green"}, {"emerald", "green"}, {"olive", "green"}, {"sage", "green"},
	{"mint", "green"}, {"lime", "green"}, {"forest green", "green"}, {"jade", "green"},
	{"khaki", "green"}, {"hunter green", "green"}, {"pistachio", "green"}, {"seafoam", "green"},

	{"blue", "blue"}, {"navy", "blue"}, {"navy blue", "blue"}, {"royal blue", "blue"},
	{"cobalt", "blue"}, {"sapphire", "blue"}, {"cerulean", "blue"}, {"azure", "blue"},
	{"sky blue", "blue"}, {"baby blue", "blue"}, {"powder blue", "blue"}, {"denim", "blue"},
	{"indigo", "blue"}, {"teal", "blue"}, {"turquoise", "blue"}, {"aqua", "blue"},
	{"cyan", "blue"}, {"periwinkle", "blue"},

	{"purple", "purple"}, {"violet", "purple"}, {"lavender", "purple"}, {"lilac", "purple"},
	{"plum", "purple"}, {"mauve", "purple"}, {"amethyst", "purple"}, {"eggplant", "purple"},
	{"orchid", "purple"},

	{"brown", "brown"}, {"chocolate", "brown"}, {"camel", "brown"}, {"tan", "brown"},
	{"caramel", "brown"}, {"mocha", "brown"}, {"espresso", "brown"}, {"chestnut", "brown"},
	{"cognac", "brown"}, {"bronze", "brown"},

	{"beige", "beige"}, {"nude", "beige"}, {"taupe", "beige"}, {"champagne", "beige"},
	{"sand", "beige"}, {"oatmeal", "beige"},

	{"white", "white"}, {"ivory", "white"}, {"cream", "white"}, {"off white", "white"},
	{"pearl", "white"},

	{"black", "black"}, {"jet black", "black"}, {"onyx", "black"}, {"ebony", "black"},

	{"gray", "gray"}, {"grey", "gray"}, {"charcoal", "gray"}, {"slate", "gray"},
	{"silver", "silver"}, {"pewter", "gray"}, {"ash", "gray"},

	{"gold", "gold"}, {"rose gold", "gold"}, {"metallic", "silver"},
}
