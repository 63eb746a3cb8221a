package game

// Clone produces a structurally independent copy of the state. Slices and
// maps owned by the state are copied field by field instead of serializing
// the whole tree, so a previous state reference stays valid after the next
// transition mutates the copy.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	ns := *s

	ns.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		np := p
		np.UsedAttackCategories = append([]Category(nil), p.UsedAttackCategories...)
		ns.Players[i] = np
	}

	ns.Board = append([]Field(nil), s.Board...)
	ns.Winners = append([]Player(nil), s.Winners...)
	ns.Eliminations = append([]EliminationRecord(nil), s.Eliminations...)
	ns.QuestionHistory = append([]string(nil), s.QuestionHistory...)
	ns.AttackerQueue = append([]PlayerID(nil), s.AttackerQueue...)
	ns.GameLog = append([]string(nil), s.GameLog...)
	ns.AllowedCategories = append([]Category(nil), s.AllowedCategories...)

	if s.Phase1Selections != nil {
		ns.Phase1Selections = make(map[PlayerID]*FieldID, len(s.Phase1Selections))
		for k, v := range s.Phase1Selections {
			if v == nil {
				ns.Phase1Selections[k] = nil
				continue
			}
			fv := *v
			ns.Phase1Selections[k] = &fv
		}
	}

	ns.ActiveQuestion = s.ActiveQuestion.Clone()

	if s.AnswerResult != nil {
		ar := *s.AnswerResult
		ns.AnswerResult = &ar
	}

	return &ns
}

// Clone copies the active question including its answer map.
func (aq *ActiveQuestion) Clone() *ActiveQuestion {
	if aq == nil {
		return nil
	}
	naq := *aq
	naq.Question.Options = append([]string(nil), aq.Question.Options...)
	naq.PlayerAnswers = make(map[PlayerID]*string, len(aq.PlayerAnswers))
	for k, v := range aq.PlayerAnswers {
		if v == nil {
			naq.PlayerAnswers[k] = nil
			continue
		}
		sv := *v
		naq.PlayerAnswers[k] = &sv
	}
	return &naq
}
