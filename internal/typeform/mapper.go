package typeform

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/venturescout/dealflow/internal/model"
)

// Mapper converts raw form responses into Submission entities using a
// versioned field schema. Validation failures are field-local: the offending
// field stays unset and the rest of the response is still mapped.
type Mapper struct {
	schema Schema
	logger *zap.Logger
}

// NewMapper builds a Mapper for the given schema.
func NewMapper(schema Schema, logger *zap.Logger) *Mapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mapper{schema: schema, logger: logger}
}

// Map builds a Submission from one raw response. The raw payload is always
// retained on the entity regardless of per-field outcomes, and mapping the
// same response twice yields identical values.
func (m *Mapper) Map(resp Response) *model.Submission {
	sub := &model.Submission{
		SubmissionID: resp.ResponseID,
		CreatedAt:    time.Now().UTC(),
		RawResponse:  resp.Raw,
	}

	byRef := make(map[string]Answer, len(resp.Answers))
	for _, a := range resp.Answers {
		byRef[a.Field.Ref] = a
	}

	for _, fm := range m.schema.Fields {
		answer, ok := byRef[fm.Ref]
		if !ok {
			continue
		}
		value, ok := answer.Value()
		if !ok {
			continue
		}
		m.assign(sub, fm, value)
	}
	return sub
}

func (m *Mapper) assign(sub *model.Submission, fm FieldMapping, v Value) {
	switch fm.Kind {
	case KindEmail:
		if !ValidEmail(v.Text) {
			m.logger.Error("invalid email format",
				zap.String("submission_id", sub.SubmissionID),
				zap.String("field", fm.Field),
				zap.String("value", v.Text),
			)
			return
		}
		m.setText(sub, fm.Field, v.Text)
	case KindPhone:
		if !ValidPhone(v.Text) {
			m.logger.Error("invalid phone format",
				zap.String("submission_id", sub.SubmissionID),
				zap.String("field", fm.Field),
				zap.String("value", v.Text),
			)
			return
		}
		m.setText(sub, fm.Field, v.Text)
	case KindInt:
		n, ok := NormalizeNumber(v.Text, false)
		if !ok {
			m.warnNumber(sub.SubmissionID, fm.Field, v.Text)
			return
		}
		m.setInt(sub, fm.Field, int64(n))
	case KindFloat:
		n, ok := NormalizeNumber(v.Text, true)
		if !ok {
			m.warnNumber(sub.SubmissionID, fm.Field, v.Text)
			return
		}
		m.setFloat(sub, fm.Field, n)
	case KindList:
		if v.IsList {
			m.setList(sub, fm.Field, v.Labels)
			return
		}
		m.setList(sub, fm.Field, []string{v.Text})
	default:
		if v.IsList {
			m.setText(sub, fm.Field, strings.Join(v.Labels, ", "))
			return
		}
		m.setText(sub, fm.Field, v.Text)
	}
}

func (m *Mapper) warnNumber(submissionID, field, raw string) {
	m.logger.Warn("could not convert value to number",
		zap.String("submission_id", submissionID),
		zap.String("field", field),
		zap.String("value", raw),
	)
}

func (m *Mapper) setText(sub *model.Submission, field, val string) {
	switch field {
	case "founder_name":
		sub.FounderName = val
	case "founder_title":
		sub.FounderTitle = val
	case "founder_email":
		sub.FounderEmail = val
	case "founder_phone":
		sub.FounderPhone = val
	case "linkedin_url":
		sub.LinkedInURL = val
	case "company_name":
		sub.CompanyName = val
	case "website":
		sub.Website = val
	case "description":
		sub.Description = val
	case "location":
		sub.Location = val
	case "legal_structure":
		sub.LegalStructure = val
	case "problem_statement":
		sub.ProblemStatement = val
	case "solution_statement":
		sub.SolutionStatement = val
	case "unique_value":
		sub.UniqueValue = val
	case "customer_validation":
		sub.CustomerValidation = val
	case "funding_stage":
		sub.FundingStage = val
	case "lead_investor":
		sub.LeadInvestor = val
	case "pitch_deck_url":
		sub.PitchDeckURL = val
	case "referral_source":
		sub.ReferralSource = val
	default:
		m.unknownField(field)
	}
}

func (m *Mapper) setInt(sub *model.Submission, field string, val int64) {
	switch field {
	case "active_users":
		sub.ActiveUsers = &val
	case "paying_users":
		sub.PayingUsers = &val
	case "customer_count":
		sub.CustomerCount = &val
	default:
		m.unknownField(field)
	}
}

func (m *Mapper) setFloat(sub *model.Submission, field string, val float64) {
	switch field {
	case "mrr":
		sub.MRR = &val
	case "round_size":
		sub.RoundSize = &val
	case "valuation":
		sub.Valuation = &val
	case "commitments":
		sub.Commitments = &val
	default:
		m.unknownField(field)
	}
}

func (m *Mapper) setList(sub *model.Submission, field string, val []string) {
	switch field {
	case "founder_experience":
		sub.FounderExperience = append([]string(nil), val...)
	default:
		m.unknownField(field)
	}
}

func (m *Mapper) unknownField(field string) {
	m.logger.Warn("schema maps unknown submission field", zap.String("field", field))
}
