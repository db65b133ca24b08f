package review

import "recruitflow/internal/errs"

var (
	ErrApplicationNotFound   = errs.New(errs.KindNotFound, "application not found")
	ErrEvaluationNotFound    = errs.New(errs.KindNotFound, "evaluation not found")
	ErrPostingNotFound       = errs.New(errs.KindNotFound, "posting not found")
	ErrParticipationNotFound = errs.New(errs.KindNotFound, "participation not found")
	ErrNotInSequence         = errs.New(errs.KindNotFound, "application not in filtered sequence")

	ErrInvalidTransition = errs.New(errs.KindInvalidTransition, "status transition not allowed")
	ErrStaleStatus       = errs.New(errs.KindInvalidTransition, "application status changed concurrently")
	ErrUnknownStatus     = errs.New(errs.KindInvalidTransition, "unknown application status")

	ErrInvalidScore = errs.New(errs.KindInvalidScore, "criterion score out of range")

	ErrProgramMissing = errs.New(errs.KindIntegrity, "posting has no owning program")

	ErrActorRequired        = errs.New(errs.KindValidation, "acting reviewer is required")
	ErrSubmitterRequired    = errs.New(errs.KindValidation, "submitter is required")
	ErrApplicantIncomplete  = errs.New(errs.KindValidation, "applicant name and email are required")
	ErrAttachmentCount      = errs.New(errs.KindValidation, "one or two attachments are required")
	ErrAttachmentIncomplete = errs.New(errs.KindValidation, "attachment url and name are required")
	ErrMemoTooLong          = errs.New(errs.KindValidation, "memo is too long")
	ErrInvalidParticipation = errs.New(errs.KindValidation, "invalid participation state")
	ErrInvalidFilter        = errs.New(errs.KindValidation, "invalid list filter")
	ErrInvalidDate          = errs.New(errs.KindValidation, "invalid date")

	ErrPostingUnpublished = errs.New(errs.KindWindowClosed, "posting is not published")
	ErrWindowNotOpen      = errs.New(errs.KindWindowClosed, "recruitment window is not open")
)
