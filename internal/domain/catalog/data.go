package catalog

// Categories are aligned with collections so both can drive shop filters.
var defaultCategories = []Category{
	{
		ID:          "polos",
		Name:        "Polos",
		Slug:        "polos",
		Description: "Classic polo shirts with a streetwear edge.",
	},
	{
		ID:          "jackets",
		Name:        "Jackets",
		Slug:        "jackets",
		Description: "Workwear-inspired outerwear for everyday use.",
	},
	{
		ID:          "accessories",
		Name:        "Accessories",
		Slug:        "accessories",
		Description: "Caps, bags, and essential add-ons.",
	},
	{
		ID:          "flannel-long-sleeve",
		Name:        "Flannel Sh!rts – Long Sleeve",
		Slug:        "flannel-long-sleeve",
		Description: "Classic long sleeve flannels with timeless plaid patterns.",
	},
	{
		ID:          "flannel-short-sleeve",
		Name:        "Flannel Sh!rts – Short Sleeve",
		Slug:        "flannel-short-sleeve",
		Description: "Short sleeve flannels for warm weather styling.",
	},
	{
		ID:          "flannel-patchwork-long-sleeve",
		Name:        "Flannel Patchwork Sh!rts – Long Sleeve",
		Slug:        "flannel-patchwork-long-sleeve",
		Description: "Bold patchwork flannels with mixed fabrics and patterns.",
	},
}

var defaultCollections = []Collection{
	{
		ID:          "polos",
		Name:        "Polos",
		Slug:        "polos",
		Description: "Classic polo shirts with a streetwear edge.",
	},
	{
		ID:          "jackets",
		Name:        "Jackets",
		Slug:        "jackets",
		Description: "Workwear-inspired outerwear for everyday use.",
	},
	{
		ID:          "accessories",
		Name:        "Accessories",
		Slug:        "accessories",
		Description: "Caps, bags, and essential add-ons.",
	},
	{
		ID:          "flannel-long-sleeve",
		Name:        "Flannel Sh!rts – Long Sleeve",
		Slug:        "flannel-long-sleeve",
		Description: "Classic long sleeve flannels with timeless plaid patterns.",
	},
	{
		ID:          "flannel-short-sleeve",
		Name:        "Flannel Sh!rts – Short Sleeve",
		Slug:        "flannel-short-sleeve",
		Description: "Short sleeve flannels for warm weather styling.",
	},
	{
		ID:          "flannel-patchwork-long-sleeve",
		Name:        "Flannel Patchwork Sh!rts – Long Sleeve",
		Slug:        "flannel-patchwork-long-sleeve",
		Description: "Bold patchwork flannels with mixed fabrics and patterns.",
	},
}

var defaultStore = &Store{
	categories:  defaultCategories,
	collections: defaultCollections,
}
