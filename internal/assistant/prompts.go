package assistant

import (
	"fmt"
	"strings"
)

const systemInstruction = `You are MomVerse, an AI-powered companion for new mothers.
Your tone is empathetic, warm, supportive, and non-judgmental.
Core Responsibilities:
1. Baby Cry Analysis: Identify patterns (hunger, sleep, gas).
2. Symptom Check: Suggest home care, identify red flags, NEVER diagnose.
3. Feeding/Sleep/Wellness Support.
Safety Rules:
- NEVER give diagnoses or medical claims.
- ALWAYS include a safety disclaimer.
- If unsure or if symptoms are severe, suggest a pediatrician.`

// Disclaimers every cry and symptom answer must carry.
const (
	CryDisclaimer     = "I'm not a medical professional, but here's what this cry may suggest."
	SymptomDisclaimer = "This is not medical advice. If symptoms worsen, consult a pediatrician."
)

// ChatGreeting opens every wellness chat.
const ChatGreeting = "Hi! I'm MomVerse. I'm here to support you with everything from baby care to your own recovery. How are you feeling today?"

// ChatErrorReply is shown in the conversation when a chat request fails.
const ChatErrorReply = "I'm having trouble connecting right now. Please try again in a moment."

// Fallbacks used when the model returns no text.
const (
	fallbackCry      = "I couldn't analyze the audio clearly. Please try again."
	fallbackSymptom  = "I couldn't process the symptom check. Please try again."
	fallbackChat     = "I'm here for you, but I couldn't generate a response right now."
	fallbackMealPlan = "Could not generate meal plan."
)

// Display messages for failed requests.
const (
	failCry      = "Unable to analyze cry audio at this time."
	failSymptom  = "Unable to analyze symptoms at this time."
	failChat     = "Connection issue. Please try again."
	failMealPlan = "Unable to generate a meal plan at this time."
)

func cryPrompt() string {
	return `Listen to this baby cry.
1. Identify potential causes (hunger, fatigue, pain, gas, etc.).
2. Explain why in simple terms.
3. Provide soothing suggestions.
4. Include the mandatory safety line: "` + CryDisclaimer + `"`
}

func symptomPrompt(req SymptomRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze these symptoms: %q.\n", req.Description)
	if req.Age != "" {
		fmt.Fprintf(&sb, "Baby's Age: %s.\n", req.Age)
	}
	if len(req.Image) > 0 {
		sb.WriteString("Also analyze the attached image.\n")
	}
	sb.WriteString(`1. Identify possible causes considering the age.
2. Suggest gentle home-care steps.
3. List red flags.
4. REQUIRED SAFETY: "` + SymptomDisclaimer + `"`)
	return sb.String()
}

func mealPlanPrompt(diet, cuisine string) string {
	if strings.TrimSpace(cuisine) == "" {
		cuisine = "International"
	}
	if strings.TrimSpace(diet) == "" {
		diet = "No preference"
	}
	return fmt.Sprintf(`Generate a simple, nutritious one-day meal plan for a breastfeeding mom.
Cuisine/Region: %s.
Diet Preference: %s.
IMPORTANT: STRICTLY NO BEEF.
Include breakfast, lunch, dinner, and 2 snacks.
Focus on iron-rich, galactogogues (milk-boosting), and energy-boosting foods appropriate for postpartum recovery.
Keep it formatted nicely.`, cuisine, diet)
}
