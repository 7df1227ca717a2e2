package mathml

// identifiers are commands that typeset as a single <mi>.
var identifiers = map[string]string{
	// lowercase Greek
	"alpha":      "α",
	"beta":       "β",
	"gamma":      "γ",
	"delta":      "δ",
	"epsilon":    "ϵ",
	"varepsilon": "ε",
	"zeta":       "ζ",
	"eta":        "η",
	"theta":      "θ",
	"vartheta":   "ϑ",
	"iota":       "ι",
	"kappa":      "κ",
	"lambda":     "λ",
	"mu":         "μ",
	"nu":         "ν",
	"xi":         "ξ",
	"omicron":    "ο",
	"pi":         "π",
	"varpi":      "ϖ",
	"rho":        "ρ",
	"varrho":     "ϱ",
	"sigma":      "σ",
	"varsigma":   "ς",
	"tau":        "τ",
	"upsilon":    "υ",
	"phi":        "ϕ",
	"varphi":     "φ",
	"chi":        "χ",
	"psi":        "ψ",
	"omega":      "ω",

	// ordinary symbols
	"infty":      "∞",
	"emptyset":   "∅",
	"varnothing": "∅",
	"partial":    "∂",
	"nabla":      "∇",
	"hbar":       "ℏ",
	"ell":        "ℓ",
	"aleph":      "ℵ",
	"Re":         "ℜ",
	"Im":         "ℑ",
	"wp":         "℘",
	"imath":      "ı",
	"jmath":      "ȷ",
}

// uprightIdentifiers are uppercase Greek letters, typeset upright.
var uprightIdentifiers = map[string]string{
	"Gamma":   "Γ",
	"Delta":   "Δ",
	"Theta":   "Θ",
	"Lambda":  "Λ",
	"Xi":      "Ξ",
	"Pi":      "Π",
	"Sigma":   "Σ",
	"Upsilon": "Υ",
	"Phi":     "Φ",
	"Psi":     "Ψ",
	"Omega":   "Ω",
}

// operators are commands that typeset as a single <mo>.
var operators = map[string]string{
	// binary operators
	"times":    "×",
	"div":      "÷",
	"cdot":     "⋅",
	"cdotp":    "⋅",
	"pm":       "±",
	"mp":       "∓",
	"ast":      "∗",
	"star":     "⋆",
	"circ":     "∘",
	"bullet":   "∙",
	"oplus":    "⊕",
	"ominus":   "⊖",
	"otimes":   "⊗",
	"odot":     "⊙",
	"cup":      "∪",
	"cap":      "∩",
	"setminus": "∖",
	"wedge":    "∧",
	"land":     "∧",
	"vee":      "∨",
	"lor":      "∨",
	"neg":      "¬",
	"lnot":     "¬",

	// relations
	"le":        "≤",
	"leq":       "≤",
	"ge":        "≥",
	"geq":       "≥",
	"leqslant":  "⩽",
	"geqslant":  "⩾",
	"ne":        "≠",
	"neq":       "≠",
	"lt":        "<",
	"gt":        ">",
	"ll":        "≪",
	"gg":        "≫",
	"approx":    "≈",
	"equiv":     "≡",
	"sim":       "∼",
	"simeq":     "≃",
	"cong":      "≅",
	"propto":    "∝",
	"in":        "∈",
	"notin":     "∉",
	"ni":        "∋",
	"subset":    "⊂",
	"subseteq":  "⊆",
	"supset":    "⊃",
	"supseteq":  "⊇",
	"perp":      "⊥",
	"parallel":  "∥",
	"mid":       "∣",
	"nmid":      "∤",
	"vdash":     "⊢",
	"models":    "⊨",
	"therefore": "∴",
	"because":   "∵",

	// arrows
	"to":                "→",
	"rightarrow":        "→",
	"leftarrow":         "←",
	"gets":              "←",
	"leftrightarrow":    "↔",
	"Rightarrow":        "⇒",
	"Leftarrow":         "⇐",
	"Leftrightarrow":    "⇔",
	"implies":           "⟹",
	"impliedby":         "⟸",
	"iff":               "⟺",
	"mapsto":            "↦",
	"longrightarrow":    "⟶",
	"longleftarrow":     "⟵",
	"uparrow":           "↑",
	"downarrow":         "↓",
	"rightleftharpoons": "⇌",
	"hookrightarrow":    "↪",

	// quantifiers and misc
	"forall":   "∀",
	"exists":   "∃",
	"nexists":  "∄",
	"angle":    "∠",
	"triangle": "△",
	"degree":   "°",
	"prime":    "′",
	"ldots":    "…",
	"dots":     "…",
	"cdots":    "⋯",
	"vdots":    "⋮",
	"ddots":    "⋱",
	"colon":    ":",
	"vert":     "|",
	"Vert":     "‖",
}

// fenceOperators are delimiter commands usable both bare and after
// \left, \right and the \big family.
var fenceOperators = map[string]string{
	"langle": "⟨",
	"rangle": "⟩",
	"lfloor": "⌊",
	"rfloor": "⌋",
	"lceil":  "⌈",
	"rceil":  "⌉",
	"lbrace": "{",
	"rbrace": "}",
	"lvert":  "|",
	"rvert":  "|",
	"lVert":  "‖",
	"rVert":  "‖",
	"vert":   "|",
	"Vert":   "‖",
	"{":      "{",
	"}":      "}",
	"|":      "‖",
}

// arrowDelimiters are only meaningful after \left, \right or \big.
var arrowDelimiters = map[string]string{
	"uparrow":   "↑",
	"downarrow": "↓",
	"Uparrow":   "⇑",
	"Downarrow": "⇓",
	"backslash": `\`,
}

// largeOperators take limits under and over in display mode.
var largeOperators = map[string]string{
	"sum":       "∑",
	"prod":      "∏",
	"coprod":    "∐",
	"int":       "∫",
	"iint":      "∬",
	"iiint":     "∭",
	"oint":      "∮",
	"bigcup":    "⋃",
	"bigcap":    "⋂",
	"bigvee":    "⋁",
	"bigwedge":  "⋀",
	"bigoplus":  "⨁",
	"bigotimes": "⨂",
}

// functions are named operators set in upright type. The bool reports
// whether scripts attach as limits in display mode.
var functions = map[string]bool{
	"sin":    false,
	"cos":    false,
	"tan":    false,
	"cot":    false,
	"sec":    false,
	"csc":    false,
	"arcsin": false,
	"arccos": false,
	"arctan": false,
	"sinh":   false,
	"cosh":   false,
	"tanh":   false,
	"coth":   false,
	"log":    false,
	"ln":     false,
	"lg":     false,
	"exp":    false,
	"deg":    false,
	"dim":    false,
	"ker":    false,
	"arg":    false,
	"hom":    false,
	"lim":    true,
	"liminf": true,
	"limsup": true,
	"max":    true,
	"min":    true,
	"sup":    true,
	"inf":    true,
	"det":    true,
	"gcd":    true,
	"Pr":     true,
}

// accents place a mark over (or under) their argument.
var accents = map[string]string{
	"hat":            "^",
	"widehat":        "^",
	"bar":            "¯",
	"overline":       "‾",
	"vec":            "→",
	"overrightarrow": "→",
	"dot":            "˙",
	"ddot":           "¨",
	"tilde":          "~",
	"widetilde":      "~",
	"check":          "ˇ",
	"breve":          "˘",
	"acute":          "´",
	"grave":          "`",
}

var underAccents = map[string]string{
	"underline": "_",
}

// fontVariants map font commands to MathML mathvariant values.
var fontVariants = map[string]string{
	"mathrm":     "normal",
	"mathbf":     "bold",
	"mathit":     "italic",
	"mathbb":     "double-struck",
	"mathcal":    "script",
	"mathscr":    "script",
	"mathfrak":   "fraktur",
	"mathsf":     "sans-serif",
	"mathtt":     "monospace",
	"boldsymbol": "bold-italic",
	"bm":         "bold-italic",
}

// textCommands take a literal text argument.
var textCommands = map[string]bool{
	"text":   true,
	"textrm": true,
	"textbf": true,
	"textit": true,
	"textsf": true,
	"texttt": true,
	"mbox":   true,
}

// spaces are horizontal spacing commands and their widths.
var spaces = map[string]string{
	"quad":      "1em",
	"qquad":     "2em",
	"enspace":   "0.5em",
	"thinspace": "0.1667em",
	",":         "0.1667em",
	":":         "0.2222em",
	">":         "0.2222em",
	";":         "0.2778em",
	"!":         "-0.1667em",
	" ":         "0.25em",
}

// noOps are style switches accepted and ignored.
var noOps = map[string]bool{
	"displaystyle":      true,
	"textstyle":         true,
	"scriptstyle":       true,
	"scriptscriptstyle": true,
	"limits":            true,
	"nolimits":          true,
	"nonumber":          true,
	"notag":             true,
}

// sizedDelimiters are the \big family; they size the following delimiter.
var sizedDelimiters = map[string]string{
	"big":   "1.2em",
	"bigl":  "1.2em",
	"bigr":  "1.2em",
	"Big":   "1.623em",
	"Bigl":  "1.623em",
	"Bigr":  "1.623em",
	"bigg":  "2.047em",
	"biggl": "2.047em",
	"biggr": "2.047em",
	"Bigg":  "2.470em",
	"Biggl": "2.470em",
	"Biggr": "2.470em",
}

// fractions maps fraction commands to their displaystyle attribute; empty
// keeps the surrounding style.
var fractions = map[string]string{
	"frac":  "",
	"cfrac": "true",
	"dfrac": "true",
	"tfrac": "false",
}

var binomials = map[string]string{
	"binom":  "",
	"dbinom": "true",
	"tbinom": "false",
}
