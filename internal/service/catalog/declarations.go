package catalog

import "github.com/heartmarshall/kubishi-relay/internal/domain"

// Parameter names as the model must send them.
const (
	ParamEnglishWord = "englishWord"
	ParamWordID      = "wordId"
	ParamQuery       = "query"
)

// declarations lists the capabilities in the order the model sees them.
// Descriptions must keep telling the model when to call each one.
func declarations() []domain.ToolDeclaration {
	return []domain.ToolDeclaration{
		{
			Name: domain.CapTranslateToPaiute,
			Description: "Use this function to translate English words to Paiute. It is critical for fulfilling " +
				"translation requests: ALWAYS call it instead of answering from memory. The input should ONLY be " +
				"the exact English word to translate; nothing else. If the prompt contains multiple words, call " +
				"this function multiple times.",
			Params: []domain.Param{{
				Name:        ParamEnglishWord,
				Type:        domain.ParamString,
				Required:    true,
				Description: "The English word to translate to Paiute. The value should be a SINGLE word only. For example: dog, cat, house.",
			}},
		},
		{
			Name: domain.CapGetWordDetails,
			Description: "Use this function to retrieve detailed information about a specific dictionary word " +
				"using its ID. Always use it when the user gives a word ID.",
			Params: []domain.Param{{
				Name:        ParamWordID,
				Type:        domain.ParamString,
				Required:    true,
				Description: "The ID of the word to retrieve details for.",
			}},
		},
		{
			Name: domain.CapSearchEnglishWords,
			Description: "Use this function to search the dictionary for English words, glosses and definitions. " +
				"Prefer it over answering unaided whenever the user asks what a word means or how it is used.",
			Params: []domain.Param{{
				Name:        ParamQuery,
				Type:        domain.ParamString,
				Required:    true,
				Description: "The search query to find English words.",
			}},
		},
		{
			Name: domain.CapSearchSentences,
			Description: "Use this function to search for example sentences that are relevant to the query. " +
				"Always use it when the user asks for sentences, phrases or usage examples.",
			Params: []domain.Param{{
				Name:        ParamQuery,
				Type:        domain.ParamString,
				Required:    true,
				Description: "The search query to find sentences.",
			}},
		},
	}
}
