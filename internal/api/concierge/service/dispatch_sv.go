package conciergeService

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ConciergeGolang/internal/api/concierge"
	"ConciergeGolang/internal/entity"
	contextPkg "ConciergeGolang/pkg/context"
	"ConciergeGolang/pkg/nlp"
	"ConciergeGolang/pkg/places"
)

// Canned replies. The wording is part of the product surface; client code
// and the test suite both key off these exact strings.
const (
	replyBusy         = "I'm processing your previous request. Please wait a moment before sending another."
	replyGreeting     = "Hello — welcome! How can I help you today?"
	replyNoInfo       = "I don't have that info right now — would you like me to connect you to hotel staff?"
	replyDiningOrder  = "I can help with room service or reservations — do you want to order now or make a reservation? Please tell me dish or cuisine and party size."
	replyDiningAsk    = "What kind of food are you looking for (cuisine, budget, or dietary needs)?"
	replyNeedLocation = "I need a city name or permission to use your location. May I use the city name for suggestions?"
	replyNoLiveData   = "I couldn't find live attraction data right now. Would you like general suggestions instead?"
	replyFallbackData = "I couldn't fetch live attraction data right now — here are general suggestions instead."
	replyTransport    = "Do you need a taxi, shuttle, or directions? I can provide estimated times and options."
	replyTranslateAsk = "What phrase would you like translated and to which language?"
	replySmallTalk    = "You're welcome — have a great stay!"
	replyClarify      = "I'm not sure I understood. Could you please rephrase or tell me one detail (e.g., city or room number)?"
	replyWhichPlace   = "Which place would you like more information about? You can select one from the suggestions above or tell me the name."
)

var diningOrderPattern = regexp.MustCompile(`order|room service|reserve|reservation`)

// HandleMessage runs one classify-and-respond cycle: acquire the session
// guard, classify the intent, route to the matching handler, release the
// guard on every exit path. A busy session is answered, not errored.
func (s *conciergeService) HandleMessage(ctx context.Context, req concierge.MessageRequest) (*concierge.MessageResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if strings.TrimSpace(req.SessionID) == "" {
		return nil, concierge.ErrSessionRequired
	}

	if !s.guard.Acquire(req.SessionID) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": req.SessionID,
		}).Debug("Rejected concurrent message for busy session")
		return &concierge.MessageResponse{Reply: replyBusy}, nil
	}
	defer s.guard.Release(req.SessionID)

	intent := nlp.Classify(req.Message)
	resp := &concierge.MessageResponse{Intent: intent.String()}

	switch intent {
	case nlp.IntentGreet:
		resp.Reply = replyGreeting

	case nlp.IntentHotelInfo:
		if answer, ok := s.matcher.Answer(req.Message); ok {
			resp.Reply = answer
		} else {
			resp.Reply = replyNoInfo
		}

	case nlp.IntentDining:
		if diningOrderPattern.MatchString(strings.ToLower(req.Message)) {
			resp.Reply = replyDiningOrder
		} else {
			resp.Reply = replyDiningAsk
		}

	case nlp.IntentLocalAttractions:
		s.handleAttractions(ctx, req, resp)

	case nlp.IntentPlaceDetails:
		s.handlePlaceDetails(ctx, req, resp)

	case nlp.IntentTransport:
		resp.Reply = replyTransport

	case nlp.IntentTranslation:
		if phrase, language, ok := nlp.ExtractTranslation(req.Message); ok {
			resp.Reply = fmt.Sprintf("I can translate %q to %s. (Translation service not hooked up in this prototype.)", phrase, language)
		} else {
			resp.Reply = replyTranslateAsk
		}

	case nlp.IntentSmallTalk:
		resp.Reply = replySmallTalk

	default:
		// last-ditch FAQ attempt before asking the guest to rephrase
		if answer, ok := s.matcher.Answer(req.Message); ok {
			resp.Reply = answer
		} else {
			resp.Reply = replyClarify
		}
	}

	s.recordTurn(ctx, req, intent, resp)

	return resp, nil
}

func (s *conciergeService) handleAttractions(ctx context.Context, req concierge.MessageRequest, resp *concierge.MessageResponse) {
	requestID := contextPkg.GetRequestID(ctx)
	cityFromMessage := nlp.ExtractCity(req.Message)

	if !req.ConsentLocation && req.City == "" && req.Coords == nil && cityFromMessage == "" {
		resp.Reply = replyNeedLocation
		return
	}

	// coords win when the guest consented; otherwise the message beats the
	// payload city, and "hotel area" is the search of last resort
	var area places.Area
	if req.ConsentLocation {
		area = places.Area{Coords: req.Coords}
	} else {
		city := cityFromMessage
		if city == "" {
			city = req.City
		}
		if city == "" {
			city = "hotel area"
		}
		area = places.Area{City: city}
	}

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"session_id":   req.SessionID,
		"message_city": cityFromMessage,
		"payload_city": req.City,
	}).Debug("Resolved attraction search area")

	result, err := s.placesClient.Find(ctx, area, "tourist attraction")
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Location lookup failed, treating as no live data")
		result = places.Result{}
	}

	live := result.Live
	resp.LiveLookup = &live

	if len(result.Places) == 0 {
		resp.Reply = replyNoLiveData
		return
	}

	if result.Live {
		resp.Reply = fmt.Sprintf("Here are the top %d nearby attractions:", len(result.Places))
	} else {
		resp.Reply = replyFallbackData
	}
	resp.Suggestions = result.Places
}

func (s *conciergeService) handlePlaceDetails(ctx context.Context, req concierge.MessageRequest, resp *concierge.MessageResponse) {
	if req.LastPlace == nil {
		resp.Reply = replyWhichPlace
		return
	}

	details, err := s.placesClient.Details(ctx, *req.LastPlace)
	if err != nil || details == nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"place":      req.LastPlace.Name,
		}).Debug("Place details lookup came back empty")
		resp.Reply = fmt.Sprintf(
			"I tried to get more details about %s, but I couldn't find additional information right now. Try asking \"places near [city]\" to see more options.",
			req.LastPlace.Name)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's what I found about **%s**:\n\n", details.Name)
	fmt.Fprintf(&b, "Location: %s\n", details.Address)
	if details.Amenity != "" {
		fmt.Fprintf(&b, "Type: %s\n", details.Amenity)
	}
	if details.Hours != "" {
		fmt.Fprintf(&b, "Hours: %s\n", details.Hours)
	}
	if details.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", details.Phone)
	}
	if details.Website != "" {
		fmt.Fprintf(&b, "Website: %s\n", details.Website)
	}
	b.WriteString("\nWould you like directions, recommendations, or more details?")
	resp.Reply = b.String()
}

// recordTurn updates the intent counters and conversation log. Both writes
// are best-effort: the guest already has a reply, so a failing collaborator
// only earns a warning.
func (s *conciergeService) recordTurn(ctx context.Context, req concierge.MessageRequest, intent nlp.Intent, resp *concierge.MessageResponse) {
	requestID := contextPkg.GetRequestID(ctx)

	if s.redisServer != nil {
		if err := s.redisServer.IncrIntentCount(ctx, intent.String()); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to bump intent counter")
		}
	}

	if s.conciergeRepo == nil {
		return
	}

	repo, err := s.conciergeRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to create repository client for conversation log")
		return
	}

	turnID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		turnID = requestID
	}

	turn := entity.ConversationTurn{
		ID:        turnID,
		SessionID: req.SessionID,
		Message:   req.Message,
		Intent:    intent.String(),
		Reply:     resp.Reply,
		CreatedAt: time.Now(),
	}
	if resp.LiveLookup != nil {
		turn.LiveLookup = *resp.LiveLookup
	}

	if err := repo.Conversations.Insert(ctx, turn); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": req.SessionID,
			"error":      err.Error(),
		}).Warn("Failed to persist conversation turn")
	}
}
