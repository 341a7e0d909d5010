package doctree

// Kind identifies the construct a node represents. Names follow docutils
// element names so stylesheets can address them directly.
type Kind int

const (
	KindUnknown Kind = iota
	KindDocument
	KindSection
	KindTitle
	KindSubtitle
	KindParagraph
	KindText
	KindInline
	KindLiteral
	KindEmphasis
	KindStrong
	KindTitleReference
	KindSubscript
	KindSuperscript
	KindProblematic
	KindGenerated
	KindLiteralBlock
	KindDoctestBlock
	KindLineBlock
	KindLine
	KindBulletList
	KindEnumeratedList
	KindListItem
	KindBlockQuote
	KindAttribution
	KindTransition
	KindComment
	KindDecoration
	KindHeader
	KindFooter
	KindSubstitutionDefinition
	KindPending
	KindRaw
	KindTopic
	KindSidebar
	KindRubric
	KindDocinfo
	KindAuthor
	KindAuthors
	KindOrganization
	KindAddress
	KindContact
	KindVersion
	KindRevision
	KindStatus
	KindDate
	KindCopyright
	KindFieldList
	KindField
	KindFieldName
	KindFieldBody
	KindAdmonition
	KindAttention
	KindCaution
	KindDanger
	KindError
	KindHint
	KindImportant
	KindNote
	KindTip
	KindWarning
	KindFootnote
	KindCitation
	KindFootnoteReference
	KindCitationReference
	KindLabel
	KindSystemMessage
	KindDefinitionList
	KindDefinitionListItem
	KindTerm
	KindClassifier
	KindDefinition
	KindOptionList
	KindOptionListItem
	KindOptionGroup
	KindOption
	KindOptionString
	KindOptionArgument
	KindDescription
	KindReference
	KindTarget
	KindImage
	KindFigure
	KindCaption
	KindLegend
	KindTable
	KindTgroup
	KindColspec
	KindThead
	KindTbody
	KindRow
	KindEntry

	// KindCount is the number of node kinds, not a kind itself.
	KindCount
)

var kindNames = [KindCount]string{
	KindUnknown:                "unknown",
	KindDocument:               "document",
	KindSection:                "section",
	KindTitle:                  "title",
	KindSubtitle:               "subtitle",
	KindParagraph:              "paragraph",
	KindText:                   "#text",
	KindInline:                 "inline",
	KindLiteral:                "literal",
	KindEmphasis:               "emphasis",
	KindStrong:                 "strong",
	KindTitleReference:         "title_reference",
	KindSubscript:              "subscript",
	KindSuperscript:            "superscript",
	KindProblematic:            "problematic",
	KindGenerated:              "generated",
	KindLiteralBlock:           "literal_block",
	KindDoctestBlock:           "doctest_block",
	KindLineBlock:              "line_block",
	KindLine:                   "line",
	KindBulletList:             "bullet_list",
	KindEnumeratedList:         "enumerated_list",
	KindListItem:               "list_item",
	KindBlockQuote:             "block_quote",
	KindAttribution:            "attribution",
	KindTransition:             "transition",
	KindComment:                "comment",
	KindDecoration:             "decoration",
	KindHeader:                 "header",
	KindFooter:                 "footer",
	KindSubstitutionDefinition: "substitution_definition",
	KindPending:                "pending",
	KindRaw:                    "raw",
	KindTopic:                  "topic",
	KindSidebar:                "sidebar",
	KindRubric:                 "rubric",
	KindDocinfo:                "docinfo",
	KindAuthor:                 "author",
	KindAuthors:                "authors",
	KindOrganization:           "organization",
	KindAddress:                "address",
	KindContact:                "contact",
	KindVersion:                "version",
	KindRevision:               "revision",
	KindStatus:                 "status",
	KindDate:                   "date",
	KindCopyright:              "copyright",
	KindFieldList:              "field_list",
	KindField:                  "field",
	KindFieldName:              "field_name",
	KindFieldBody:              "field_body",
	KindAdmonition:             "admonition",
	KindAttention:              "attention",
	KindCaution:                "caution",
	KindDanger:                 "danger",
	KindError:                  "error",
	KindHint:                   "hint",
	KindImportant:              "important",
	KindNote:                   "note",
	KindTip:                    "tip",
	KindWarning:                "warning",
	KindFootnote:               "footnote",
	KindCitation:               "citation",
	KindFootnoteReference:      "footnote_reference",
	KindCitationReference:      "citation_reference",
	KindLabel:                  "label",
	KindSystemMessage:          "system_message",
	KindDefinitionList:         "definition_list",
	KindDefinitionListItem:     "definition_list_item",
	KindTerm:                   "term",
	KindClassifier:             "classifier",
	KindDefinition:             "definition",
	KindOptionList:             "option_list",
	KindOptionListItem:         "option_list_item",
	KindOptionGroup:            "option_group",
	KindOption:                 "option",
	KindOptionString:           "option_string",
	KindOptionArgument:         "option_argument",
	KindDescription:            "description",
	KindReference:              "reference",
	KindTarget:                 "target",
	KindImage:                  "image",
	KindFigure:                 "figure",
	KindCaption:                "caption",
	KindLegend:                 "legend",
	KindTable:                  "table",
	KindTgroup:                 "tgroup",
	KindColspec:                "colspec",
	KindThead:                  "thead",
	KindTbody:                  "tbody",
	KindRow:                    "row",
	KindEntry:                  "entry",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, KindCount)
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

// String returns the docutils element name of the kind, which is also the
// stylesheet selector for nodes of this kind.
func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// ParseKind maps a docutils element name to a kind. Names that are not
// known map to KindUnknown with ok set to false.
func ParseKind(name string) (Kind, bool) {
	if name == "unknown" {
		return KindUnknown, false
	}
	k, ok := kindByName[name]
	if !ok {
		return KindUnknown, false
	}
	return k, true
}

// IsTextElement reports whether nodes of this kind hold inline content
// where whitespace is significant.
func (k Kind) IsTextElement() bool {
	switch k {
	case KindTitle, KindSubtitle, KindParagraph, KindInline, KindLiteral,
		KindEmphasis, KindStrong, KindTitleReference, KindSubscript,
		KindSuperscript, KindProblematic, KindGenerated, KindLiteralBlock,
		KindDoctestBlock, KindLine, KindAttribution, KindComment,
		KindSubstitutionDefinition, KindRaw, KindRubric, KindAuthor,
		KindOrganization, KindAddress, KindContact, KindVersion,
		KindRevision, KindStatus, KindDate, KindCopyright, KindFieldName,
		KindFootnoteReference, KindCitationReference, KindLabel, KindTerm,
		KindClassifier, KindOptionString, KindOptionArgument, KindReference,
		KindTarget, KindCaption:
		return true
	}
	return false
}

// IsAdmonition reports whether the kind is one of the specific admonitions
// (note, warning, ...). The generic admonition carries its own title and is
// not included.
func (k Kind) IsAdmonition() bool {
	return k >= KindAttention && k <= KindWarning
}
