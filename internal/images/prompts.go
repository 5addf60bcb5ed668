package images

import "fmt"

// visualTemplate holds the pre-written style direction for an image prompt.
// Each comedic style gets two variants: one for compositing an uploaded
// headshot into the scene, one for pure environmental evidence.
type visualTemplate struct {
	withHeadshot    string
	withoutHeadshot string
}

var visualTemplates = map[string]visualTemplate{
	"Absurdist": {
		withHeadshot: `VISUAL STYLE: Absurdist/Surreal Photography
Create a photorealistic image with SURREAL, REALITY-BENDING elements. The subject's face/body must be photorealistic and 100% recognizable, but the scenario should defy logic and physics.
- Impossible physics: floating objects, reversed gravity, size distortions
- Surreal juxtapositions: everyday objects in impossible contexts
- Talking/sentient objects or animals (shown through visual cues, NOT text)
- Slightly Dutch angle or unusual perspective to enhance surreality
- Realistic lighting on the subject, but impossible light sources allowed`,
		withoutHeadshot: `VISUAL STYLE: Absurdist/Surreal Photography
Create photorealistic environmental evidence with SURREAL, REALITY-BENDING elements. No main subject - focus on the aftermath or scenario proving this absurd excuse happened.
- Impossible physics: floating objects, reversed gravity, size distortions
- Surreal juxtapositions and environmental clues that defy logic
- Documentary style capturing impossible scenarios
- Dreamlike atmosphere while maintaining photo quality`,
	},
	"Observational": {
		withHeadshot: `VISUAL STYLE: Modern Life Photography / Perfect Timing
Create a photorealistic image capturing RELATABLE MODERN FRUSTRATIONS with perfect comic timing. The subject must be 100% recognizable, caught in a universally relatable fail moment.
- Technology fails, notifications at the worst time, mid-spill captures
- Relatable everyday settings: coffee shop, office, home, public transit
- Candid, documentary-style capture, like a smartphone photo
- Natural, realistic lighting; not posed, caught in the moment`,
		withoutHeadshot: `VISUAL STYLE: Modern Life Photography / Environmental Evidence
Create photorealistic evidence of RELATABLE MODERN FRUSTRATIONS. Focus on environmental details everyone will recognize.
- Technology fail evidence: cracked screens, error states, dead batteries
- Everyday settings with perfect comic timing details
- Documentary/candid style capturing the aftermath
- Focus on details everyone has experienced`,
	},
	"Deadpan": {
		withHeadshot: `VISUAL STYLE: Serious Documentary / Editorial Photography
Create a FORMALLY COMPOSED, PROFESSIONALLY SHOT photograph of absurd content. Treat ridiculous subject matter with absolute seriousness. The subject must be 100% recognizable, photographed with professional gravitas.
- Formal composition: centered framing, professional portrait techniques
- Subject maintaining a neutral, dignified expression in an absurd situation
- Editorial magazine aesthetic, National Geographic seriousness
- Professional editorial lighting: soft key light, clean shadows`,
		withoutHeadshot: `VISUAL STYLE: Serious Documentary / Editorial Photography
Create FORMALLY COMPOSED, PROFESSIONALLY SHOT environmental evidence. Treat the absurd scenario with documentary seriousness.
- Formal, symmetrical framing of silly evidence
- Editorial magazine aesthetic, professional documentation style
- Clean, controlled lighting and shadows`,
	},
	"Hyperbolic": {
		withHeadshot: `VISUAL STYLE: Epic Dramatic / Movie Poster Photography
Create a DRAMATICALLY COMPOSED, CINEMATICALLY LIT photograph treating mundane failure as EPIC CATASTROPHE. The subject must be 100% recognizable, shot like an action movie hero in their moment of defeat.
- Low angle hero shots, exaggerated destruction way beyond what happened
- Smoke, sparks, debris, dramatic atmosphere effects
- Cinematic lighting: rim lights, god rays, epic skies
- Movie poster treatment: subject as tragic hero of a mundane disaster`,
		withoutHeadshot: `VISUAL STYLE: Epic Dramatic / Disaster Photography
Create CINEMATICALLY COMPOSED environmental evidence of EPIC CATASTROPHE from a mundane situation. Treat a small fail as a world-ending disaster.
- Extreme destruction scale, dramatic aftermath: smoke, debris, chaos
- Epic wide shots showing massive scope
- Dramatic Hollywood disaster lighting, high contrast`,
	},
	"Self-deprecating": {
		withHeadshot: `VISUAL STYLE: Professional Photo / Amateur Moment
Create a PROFESSIONALLY SHOT photograph of the subject looking FOOLISH/INCOMPETENT. High photo quality contrasting with an embarrassing moment. Subject must be 100% recognizable, clearly the fool in this scenario.
- Subject caught making an obvious mistake, expression of sheepish realization
- Environmental evidence of their incompetence clearly visible
- No flattering angles - honest capture of the fail
- Good, clear lighting that makes everything painfully visible`,
		withoutHeadshot: `VISUAL STYLE: Evidence of Incompetence
Create clear environmental evidence of FOOLISH MISTAKES and POOR JUDGMENT. Professional photo quality documenting an amateur-hour disaster.
- Clear evidence of incompetence in the scene
- Amateur mistakes professionally documented
- Straightforward, honest framing and lighting`,
	},
	"Ironic": {
		withHeadshot: `VISUAL STYLE: Situational Irony Photography
Create a photorealistic image showcasing VISUAL IRONY and CONTRADICTION. The subject must be 100% recognizable in a situation that is the OPPOSITE of what they intended.
- Visual contradictions: safety equipment causing the accident, help making things worse
- Ironic context: a "Be Careful" sign in the background of the mishap
- Subject's expression showing realization of the irony
- Natural, even lighting so the contradictions are clearly visible`,
		withoutHeadshot: `VISUAL STYLE: Situational Irony Photography
Create environmental evidence showcasing VISUAL IRONY. Show how attempting to solve a problem created the opposite result.
- Visual contradictions in the environment, ironic signage or warnings
- Evidence of well-intentioned actions backfiring
- Clear, even documentary lighting`,
	},
	"Meta": {
		withHeadshot: `VISUAL STYLE: Self-Aware / Fourth Wall Breaking Photography
Create a photorealistic image that ACKNOWLEDGES IT'S A STAGED EXCUSE PHOTO. The subject must be 100% recognizable and CLEARLY AWARE they are making an excuse.
- Subject making direct eye contact with the camera, knowing expression
- Obvious staging: props clearly arranged, backdrop and light stands visible at frame edges
- Transparently posed, "yeah, this is clearly fake" energy
- Professional studio lighting visible in frame`,
		withoutHeadshot: `VISUAL STYLE: Transparently Staged Evidence
Create environmental evidence that OBVIOUSLY LOOKS STAGED. Make it clear this "evidence" was arranged for the excuse.
- Props obviously placed, behind-the-scenes setup visible
- Transparently fake evidence, self-aware staging
- Obvious studio or staged lighting`,
	},
	"Paranoid": {
		withHeadshot: `VISUAL STYLE: Conspiracy / Surveillance Photography
Create a photorealistic image with a PARANOID, UNDER-SURVEILLANCE aesthetic. The subject must be 100% recognizable, photographed like they are being watched as part of an elaborate conspiracy.
- Security camera angles: high corner POV, caught-on-tape aesthetic
- Mysterious blurred figures in the background, ominous shadows
- Red string/conspiracy board aesthetic in the background
- Harsh surveillance lighting or night-vision feel`,
		withoutHeadshot: `VISUAL STYLE: Conspiracy / Surveillance Evidence
Create environmental evidence with a PARANOID, UNDER-SURVEILLANCE aesthetic. Document the conspiracy scene.
- Security footage style, surveillance POV framing
- Conspiracy evidence scattered in the environment
- Harsh surveillance lighting, ominous shadows`,
	},
}

const withHeadshotRules = `═══ CRITICAL RULES ═══

PEOPLE RULES:
✓ ONLY the uploaded person/people may appear
✓ Keep their faces 100% recognizable (same person, just in this scenario)
✓ Anonymous strangers in functional roles OK if essential (cop, waiter, random crowd)
✗ NEVER: partners, family, friends, coworkers, anyone with a personal relationship
✗ When unsure, show the subject alone

TEXT RULES (CRITICAL):
✗ NO readable text beyond single words - AI text becomes gibberish
✗ NO documents, newspapers, books, signs with multiple lines
✗ NO speech bubbles with sentences
✓ Single words only if essential ("STOP", "EXIT")
✓ Focus on VISUAL storytelling, not text

PHOTO QUALITY:
- Photorealistic subject integrated naturally into the styled scenario
- Proper lighting, shadows, perspective on the subject
- 16:9 aspect ratio`

const withoutHeadshotRules = `═══ CRITICAL RULES ═══

PEOPLE RULES:
✗ NO specific identifiable people (we don't know the excuse-maker)
✓ Anonymous generic people OK if essential (distant cop, crowd, stock-photo-style extras)
✗ NEVER: anyone appearing to have personal relationships
✗ When unsure, focus on the environment only

TEXT RULES (CRITICAL):
✗ NO readable text beyond single words - AI text becomes gibberish
✗ NO documents, newspapers, books, signs with multiple lines
✗ NO speech bubbles with sentences
✓ Single words only if essential ("STOP", "EXIT")
✓ Focus on VISUAL storytelling, not text

PHOTO QUALITY:
- Photorealistic environmental evidence
- Professional quality following the visual style
- 16:9 aspect ratio`

// BuildPrompt assembles the image-generation prompt for a canonical comedic
// style, choosing the compositing or evidence-only template depending on
// whether a headshot accompanies the request.
func BuildPrompt(style, excuseText string, hasHeadshot bool) (string, bool) {
	template, ok := visualTemplates[style]
	if !ok {
		return "", false
	}

	if hasHeadshot {
		return fmt.Sprintf(`%s

EXCUSE CONTEXT: %s

YOUR TASK: Photograph this person in a scenario visually depicting their excuse. Their face and body must remain 100%% PHOTOREALISTIC and RECOGNIZABLE - treat them as a real person being photographed, not a cartoon or illustration. Integrate them naturally into the scene with proper lighting, shadows, and perspective.

%s`, template.withHeadshot, excuseText, withHeadshotRules), true
	}

	return fmt.Sprintf(`%s

EXCUSE CONTEXT: %s

YOUR TASK: Create environmental evidence proving this excuse happened. Focus on the scene, aftermath, or objects - NOT people (we don't know what they look like). Photorealistic quality following the visual style.

%s`, template.withoutHeadshot, excuseText, withoutHeadshotRules), true
}
