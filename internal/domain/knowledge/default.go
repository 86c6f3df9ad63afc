// Package knowledge holds the built-in AssessIQ help desk answers.
package knowledge

import (
	"sync"

	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/entities"
)

// FallbackText is returned when no phrase scores above zero.
const FallbackText = "I'm not sure about that one. I can help with questions about:\n\n" +
	"• **Uploading** model answers and student answer sheets\n" +
	"• **Evaluation** and how scores are calculated\n" +
	"• **Results**, exports and statistics\n" +
	"• **Grievances** and re-evaluation requests\n" +
	"• **Accounts**, login and passwords\n" +
	"• **Students**, classes and communities\n\n" +
	"Try asking something like \"how do I upload an answer sheet?\""

// entries is the declaration-ordered literal knowledge base. Earlier entries
// win score ties, so keep the greeting and the product description first.
var entries = []entities.KnowledgeEntry{
	{
		Topic:    "greeting",
		Keywords: []string{"hello", "hey", "good morning", "good evening"},
		Answer: "👋 **Hello!** I'm the AssessIQ assistant.\n\n" +
			"Ask me anything about uploading answer sheets, evaluation, results or grievances.",
	},
	{
		Topic:    "about",
		Keywords: []string{"what is this", "about assessiq", "what is assessiq"},
		Answer: "**AssessIQ** is an AI-powered student answer evaluation system.\n\n" +
			"Teachers upload a model answer and student answer sheets. AssessIQ extracts the text, " +
			"compares each answer with the model answer and produces a score with feedback.",
	},
	{
		Topic:    "upload",
		Keywords: []string{"upload", "answer sheet", "submit sheet", "scan"},
		Answer: "**Uploading answer sheets**\n\n" +
			"1. Open **Evaluate** from the dashboard\n" +
			"2. Upload the **model answer** (PDF or image)\n" +
			"3. Upload the **student answer sheet**\n" +
			"4. Press **Evaluate** and wait for the result\n\n" +
			"Supported formats: PDF, PNG, JPG, JPEG, TIFF, BMP, WEBP and GIF, up to 10 MB.",
	},
	{
		Topic:    "ocr",
		Keywords: []string{"ocr", "handwriting", "text extraction", "extract text"},
		Answer: "**Text extraction**\n\n" +
			"Handwritten and printed sheets are read with OCR before evaluation.\n" +
			"• Clear, well-lit scans give the best results\n" +
			"• You can preview the extracted text before evaluating\n" +
			"• Blurry or skewed pages may lower accuracy",
	},
	{
		Topic:    "evaluation",
		Keywords: []string{"evaluate", "evaluation", "how does it work", "checking"},
		Answer: "**How evaluation works**\n\n" +
			"1. The student answer is extracted from the uploaded sheet\n" +
			"2. It is compared with the model answer for meaning and keywords\n" +
			"3. Diagrams and length are checked where relevant\n" +
			"4. A final score and feedback are generated\n\n" +
			"Teachers can review and adjust every evaluation.",
	},
	{
		Topic:    "scoring",
		Keywords: []string{"score", "marks", "weights", "grading"},
		Answer: "**Scoring**\n\n" +
			"The final score combines several weighted components:\n" +
			"• **Semantic similarity** with the model answer\n" +
			"• **Keyword coverage** of important terms\n" +
			"• **Structure and length** of the answer\n" +
			"• **Diagrams**, when the question needs one\n\n" +
			"The current weights are listed on the evaluation page.",
	},
	{
		Topic:    "results",
		Keywords: []string{"result", "report", "history", "export", "download"},
		Answer: "**Results**\n\n" +
			"• Open **Results** to see every past evaluation\n" +
			"• Select one to view the detailed breakdown and feedback\n" +
			"• Use **Export** to download a report\n" +
			"• Summary statistics are shown at the top of the page",
	},
	{
		Topic:    "grievance",
		Keywords: []string{"grievance", "complaint", "recheck", "appeal"},
		Answer: "**Raising a grievance**\n\n" +
			"1. Open **Grievances** and choose **New grievance**\n" +
			"2. Pick the evaluation and a category, then describe the issue\n" +
			"3. Attach supporting files if needed\n\n" +
			"Status flow: Pending - In Review - Resolved, Rejected or Escalated to an admin.",
	},
	{
		Topic:    "login",
		Keywords: []string{"login", "log in", "sign in", "logout"},
		Answer: "**Signing in**\n\n" +
			"Use the email and password given by your institution on the login page.\n" +
			"Students, teachers and admins each see their own dashboard after signing in.",
	},
	{
		Topic:    "password",
		Keywords: []string{"password", "change password", "forgot"},
		Answer: "**Changing your password**\n\n" +
			"1. Open **Profile**\n" +
			"2. Enter your current password and the new one\n" +
			"3. Save to sign out other sessions\n\n" +
			"If you forgot your password, ask your teacher or admin to reset it.",
	},
	{
		Topic:    "students",
		Keywords: []string{"add student", "students", "class", "subject"},
		Answer: "**Managing students**\n\n" +
			"Teachers can add students one by one or in bulk, organise them into classes " +
			"and assign subjects from the **Students** page.",
	},
	{
		Topic:    "community",
		Keywords: []string{"community", "group", "message", "chat"},
		Answer: "**Communities**\n\n" +
			"• Teachers create communities for a class or subject\n" +
			"• Members can post messages and share files\n" +
			"• Important messages can be pinned",
	},
	{
		Topic:    "thanks",
		Keywords: []string{"thank", "thanks", "bye"},
		Answer:   "You're welcome! 😊 Ask me anytime.",
	},
}

// Default returns the built-in knowledge base. It is built once and shared.
var Default = sync.OnceValue(func() *entities.KnowledgeBase {
	kb, err := entities.NewKnowledgeBase(entries, FallbackText)
	if err != nil {
		panic("knowledge: invalid built-in knowledge base: " + err.Error())
	}
	return kb
})
