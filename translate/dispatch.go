package translate

import (
	"rst2sile/doctree"
)

// action tells the walk what to do after an enter handler returns.
type action int

const (
	// descend visits the children, then runs the leave handler.
	descend action = iota
	// skipChildren does not visit the children but still runs the leave
	// handler.
	skipChildren
	// skipNode drops the rest of the node: no children, no leave handler.
	skipNode
)

type (
	enterFunc func(t *Translator, n *doctree.Node) (pending string, act action, err error)
	leaveFunc func(t *Translator, n *doctree.Node, pending string) error
)

type handler struct {
	enter enterFunc
	leave leaveFunc
}

// Handler pairs shared by many kinds.
var (
	inline      = handler{(*Translator).enterClasses, (*Translator).leaveClose}
	block       = handler{(*Translator).enterClasses, (*Translator).leaveBlock}
	transparent = handler{(*Translator).enterNothing, (*Translator).leaveClose}
	killed      = handler{(*Translator).enterKill, (*Translator).leaveClose}
	docinfo     = handler{(*Translator).enterDocinfoField, (*Translator).leaveClose}
	admonition  = handler{(*Translator).enterAdmonition, (*Translator).leaveClose}
	verbatim    = handler{(*Translator).enterVerbatim, (*Translator).leaveBlock}
	list        = handler{(*Translator).enterList, (*Translator).leaveList}
	footnote    = handler{(*Translator).enterFootnote, (*Translator).leaveClose}
	noteRef     = handler{(*Translator).enterFootnoteReference, (*Translator).leaveClose}
)

// dispatch has exactly one entry per node kind. Handlers never call walk
// themselves: the walk owns traversal and the pending closers.
var dispatch = [...]handler{
	doctree.KindUnknown:                {(*Translator).enterUnknown, (*Translator).leaveClose},
	doctree.KindDocument:               {(*Translator).enterDocument, (*Translator).leaveDocument},
	doctree.KindSection:                {(*Translator).enterSection, (*Translator).leaveSection},
	doctree.KindTitle:                  {(*Translator).enterTitle, (*Translator).leaveBlock},
	doctree.KindSubtitle:               {(*Translator).enterSubtitle, (*Translator).leaveBlock},
	doctree.KindParagraph:              block,
	doctree.KindText:                   {(*Translator).enterText, (*Translator).leaveClose},
	doctree.KindInline:                 inline,
	doctree.KindLiteral:                inline,
	doctree.KindEmphasis:               {(*Translator).enterEmphasis, (*Translator).leaveClose},
	doctree.KindStrong:                 {(*Translator).enterStrong, (*Translator).leaveClose},
	doctree.KindTitleReference:         inline,
	doctree.KindSubscript:              {(*Translator).enterSubscript, (*Translator).leaveClose},
	doctree.KindSuperscript:            {(*Translator).enterSuperscript, (*Translator).leaveClose},
	doctree.KindProblematic:            inline,
	doctree.KindGenerated:              inline,
	doctree.KindLiteralBlock:           verbatim,
	doctree.KindDoctestBlock:           verbatim,
	doctree.KindLineBlock:              block,
	doctree.KindLine:                   {(*Translator).enterClasses, (*Translator).leaveLine},
	doctree.KindBulletList:             list,
	doctree.KindEnumeratedList:         list,
	doctree.KindListItem:               {(*Translator).enterListItem, (*Translator).leaveClose},
	doctree.KindBlockQuote:             block,
	doctree.KindAttribution:            inline,
	doctree.KindTransition:             {(*Translator).enterTransition, (*Translator).leaveClose},
	doctree.KindComment:                killed,
	doctree.KindDecoration:             killed,
	doctree.KindHeader:                 killed,
	doctree.KindFooter:                 killed,
	doctree.KindSubstitutionDefinition: killed,
	doctree.KindPending:                killed,
	doctree.KindRaw:                    {(*Translator).enterRaw, (*Translator).leaveClose},
	doctree.KindTopic:                  {(*Translator).enterTopic, (*Translator).leaveClose},
	doctree.KindSidebar:                inline,
	doctree.KindRubric:                 block,
	doctree.KindDocinfo:                inline,
	doctree.KindAuthor:                 docinfo,
	doctree.KindAuthors:                transparent,
	doctree.KindOrganization:           docinfo,
	doctree.KindAddress:                docinfo,
	doctree.KindContact:                docinfo,
	doctree.KindVersion:                docinfo,
	doctree.KindRevision:               docinfo,
	doctree.KindStatus:                 docinfo,
	doctree.KindDate:                   docinfo,
	doctree.KindCopyright:              docinfo,
	doctree.KindFieldList:              inline,
	doctree.KindField:                  inline,
	doctree.KindFieldName:              {(*Translator).enterClasses, (*Translator).leaveFieldName},
	doctree.KindFieldBody:              inline,
	doctree.KindAdmonition:             inline,
	doctree.KindAttention:              admonition,
	doctree.KindCaution:                admonition,
	doctree.KindDanger:                 admonition,
	doctree.KindError:                  admonition,
	doctree.KindHint:                   admonition,
	doctree.KindImportant:              admonition,
	doctree.KindNote:                   admonition,
	doctree.KindTip:                    admonition,
	doctree.KindWarning:                admonition,
	doctree.KindFootnote:               footnote,
	doctree.KindCitation:               footnote,
	doctree.KindFootnoteReference:      noteRef,
	doctree.KindCitationReference:      noteRef,
	doctree.KindLabel:                  {(*Translator).enterClasses, (*Translator).leaveLabel},
	doctree.KindSystemMessage:          inline,
	doctree.KindDefinitionList:         transparent,
	doctree.KindDefinitionListItem:     transparent,
	doctree.KindTerm:                   {(*Translator).enterClasses, (*Translator).leaveTerm},
	doctree.KindClassifier:             {(*Translator).enterClassifier, (*Translator).leaveClose},
	doctree.KindDefinition:             inline,
	doctree.KindOptionList:             {(*Translator).enterOptionList, (*Translator).leaveOptionList},
	doctree.KindOptionListItem:         {(*Translator).enterOptionListItem, (*Translator).leaveClose},
	doctree.KindOptionGroup:            transparent,
	doctree.KindOption:                 {(*Translator).enterOption, (*Translator).leaveClose},
	doctree.KindOptionString:           killed,
	doctree.KindOptionArgument:         transparent,
	doctree.KindDescription:            {(*Translator).enterDescription, (*Translator).leaveClose},
	doctree.KindReference:              {(*Translator).enterReference, (*Translator).leaveClose},
	doctree.KindTarget:                 {(*Translator).enterTarget, (*Translator).leaveClose},
	doctree.KindImage:                  {(*Translator).enterImage, (*Translator).leaveClose},
	doctree.KindFigure:                 inline,
	doctree.KindCaption:                block,
	doctree.KindLegend:                 inline,
	doctree.KindTable:                  transparent,
	doctree.KindTgroup:                 transparent,
	doctree.KindColspec:                killed,
	doctree.KindThead:                  transparent,
	doctree.KindTbody:                  transparent,
	doctree.KindRow:                    transparent,
	doctree.KindEntry:                  transparent,
}

// One handler pair per kind, no more and no less.
var (
	_ [len(dispatch) - int(doctree.KindCount)]struct{}
	_ [int(doctree.KindCount) - len(dispatch)]struct{}
)
