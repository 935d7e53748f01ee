package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/qianlnk/hotel/models"
)

func TestConfessRoleIsStable(t *testing.T) {
	reg := NewRegistry()
	for _, role := range models.Roles() {
		strategy, err := reg.New(role, DefaultRules())
		require.NoError(t, err)
		assert.Equal(t, role, strategy.ConfessRole())
		assert.Equal(t, strategy.ConfessRole(), strategy.ConfessRole())
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, models.Roles(), reg.Roles())

	_, err := reg.New("banker", DefaultRules())
	assert.Error(t, err)

	reg.Register("banker", func(Rules) RoleStrategy { return NewProfessorStrategy() })
	strategy, err := reg.New("banker", DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, models.Professor, strategy.ConfessRole())

	swindler, err := reg.New(models.Swindler, Rules{SwindlerMode: models.SwindlerCollector})
	require.NoError(t, err)
	assert.Equal(t, models.SwindlerCollector, swindler.(*SwindlerStrategy).Mode())
}

func TestNoTargetIsANoOp(t *testing.T) {
	reg := NewRegistry()
	for _, role := range models.Roles() {
		t.Run(string(role), func(t *testing.T) {
			w := newTestWorld(t, 2, nil)
			strategy, err := reg.New(role, DefaultRules())
			require.NoError(t, err)
			lonely := settle(t, w, 0, "Lonely", models.Bot, strategy)
			before := lonely.View()

			_, ok := strategy.ChooseTarget(0, w)
			assert.False(t, ok)

			strategy.PerformAction(0, false, w, w.History)
			assert.Empty(t, w.History.Actions())
			assert.Equal(t, before, lonely.View())
		})
	}
}

func TestChooseTargetHuman(t *testing.T) {
	dec := &mockDecider{}
	w := newTestWorld(t, 4, dec)
	settle(t, w, 0, "Me", models.Human, NewProfessorStrategy())
	settle(t, w, 2, "You", models.Bot, NewProfessorStrategy())
	settle(t, w, 3, "Them", models.Bot, NewProfessorStrategy())

	dec.On("ChooseTarget", mock.Anything, []int{2, 3}).Return(3, nil).Once()

	target, ok := w.Hotel.ResidentAt(0).Strategy().ChooseTarget(0, w)
	require.True(t, ok)
	assert.Equal(t, 3, target)
	dec.AssertExpectations(t)
}

func TestChooseTargetHumanInputClosed(t *testing.T) {
	dec := &mockDecider{}
	w := newTestWorld(t, 4, dec)
	settle(t, w, 0, "Me", models.Human, NewDoctorStrategy())
	patient := settle(t, w, 1, "You", models.Bot, NewProfessorStrategy())

	dec.On("ChooseTarget", mock.Anything, mock.Anything).Return(0, ErrInputClosed)

	NewDoctorStrategy().PerformAction(0, true, w, w.History)
	assert.Empty(t, w.History.Actions())
	assert.Equal(t, models.None, patient.View().SuperStatus)
}

func TestAvengerNeedsAPriorVisit(t *testing.T) {
	dec := &mockDecider{}
	w := newTestWorld(t, 8, dec)
	avenger := NewAvengerStrategy()
	settle(t, w, 2, "Vera", models.Human, avenger)
	target := settle(t, w, 5, "Otto", models.Bot, NewProfessorStrategy())

	dec.On("ChooseTarget", mock.Anything, []int{5}).Return(5, nil)
	dec.On("ChooseAction", mock.Anything, []string{"Sleep"}).Return(0, nil).Once()
	dec.On("ChooseAction", mock.Anything, []string{"Sleep", "Kill"}).Return(1, nil).Once()

	avenger.PerformAction(2, true, w, w.History)
	assert.Len(t, actionsOf(w.History, models.ActionSleep), 1)
	assert.Equal(t, models.Alive, target.View().Status)

	w.History.NextDay()
	avenger.PerformAction(2, true, w, w.History)

	assert.Equal(t, models.Dead, target.View().Status)
	avenged := actionsOf(w.History, models.ActionAvenge)
	require.Len(t, avenged, 1)
	assert.Equal(t, 2, avenged[0].Day)
	dec.AssertExpectations(t)
}

func TestAvengerBotKillsOnSecondNight(t *testing.T) {
	w := newTestWorld(t, 4, nil)
	avenger := NewAvengerStrategy()
	settle(t, w, 0, "Vera", models.Bot, avenger)
	target := settle(t, w, 1, "Otto", models.Bot, NewProfessorStrategy())

	avenger.PerformAction(0, false, w, w.History)
	assert.Equal(t, models.Alive, target.View().Status)

	w.History.NextDay()
	avenger.PerformAction(0, false, w, w.History)
	assert.Equal(t, models.Dead, target.View().Status)
}

func TestDoctorOverdose(t *testing.T) {
	w := newTestWorld(t, 4, nil)
	doctor := NewDoctorStrategy()
	settle(t, w, 0, "Doc", models.Bot, doctor)
	patient := settle(t, w, 1, "Pat", models.Bot, NewProfessorStrategy())

	doctor.PerformAction(0, false, w, w.History)
	assert.Equal(t, models.Drugged, patient.View().SuperStatus)

	doctor.PerformAction(0, false, w, w.History)
	assert.Equal(t, models.Overdosed, patient.View().SuperStatus)
	assert.Len(t, actionsOf(w.History, models.ActionHeal), 2)

	patient.resolveNight()
	assert.Equal(t, models.Dead, patient.View().Status)
}

func TestKillerBotKills(t *testing.T) {
	w := newTestWorld(t, 4, nil)
	settle(t, w, 0, "Kay", models.Bot, NewKillerStrategy())
	victim := settle(t, w, 3, "Vic", models.Bot, NewProfessorStrategy())

	w.Hotel.ResidentAt(0).Strategy().PerformAction(0, false, w, w.History)

	assert.Equal(t, models.Dead, victim.View().Status)
	assert.Equal(t, []models.Action{{Day: 1, Actor: 0, Kind: models.ActionKill, Target: 3}}, w.History.Actions())
}

func TestKillerHumanActions(t *testing.T) {
	tests := []struct {
		name   string
		choice int
		check  func(t *testing.T, w *World, killer, victim *Resident)
	}{
		{"threaten", 1, func(t *testing.T, w *World, killer, victim *Resident) {
			apt, _ := w.Hotel.Apartment(1)
			require.Len(t, apt.Mailbox, 1)
			assert.Contains(t, apt.Mailbox[0], "Vic")
			assert.Equal(t, models.Alive, victim.View().Status)
		}},
		{"bribe", 2, func(t *testing.T, w *World, killer, victim *Resident) {
			assert.Equal(t, 50.0, killer.View().Balance)
			assert.Equal(t, 150.0, victim.View().Balance)
			assert.Equal(t, models.Disinterested, victim.View().SuperStatus)
		}},
		{"rob", 3, func(t *testing.T, w *World, killer, victim *Resident) {
			assert.Equal(t, 200.0, killer.View().Balance)
			assert.Equal(t, 0.0, victim.View().Balance)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := &mockDecider{}
			w := newTestWorld(t, 4, dec)
			strategy := NewKillerStrategy()
			killer := settle(t, w, 0, "Kay", models.Human, strategy)
			victim := settle(t, w, 1, "Vic", models.Bot, NewProfessorStrategy())

			dec.On("ChooseAction", mock.Anything, []string{"Kill", "Threaten", "Bribe", "Rob"}).Return(tt.choice, nil)
			dec.On("ChooseTarget", mock.Anything, []int{1}).Return(1, nil)
			dec.On("Inform", mock.Anything).Return()

			strategy.PerformAction(0, true, w, w.History)
			tt.check(t, w, killer, victim)
			assert.Len(t, w.History.Actions(), 1)
		})
	}
}

func TestJanitorClosesForGood(t *testing.T) {
	w := newTestWorld(t, 4, nil)
	janitor := NewJanitorStrategy()
	settle(t, w, 0, "Jan", models.Bot, janitor)
	settle(t, w, 2, "Tim", models.Bot, NewProfessorStrategy())

	janitor.PerformAction(0, false, w, w.History)

	apt, _ := w.Hotel.Apartment(2)
	assert.False(t, apt.Open)
	assert.Empty(t, w.Hotel.GetReadyApartments(0))
	assert.Len(t, actionsOf(w.History, models.ActionClean), 1)

	janitor.PerformAction(0, false, w, w.History)
	assert.Len(t, w.History.Actions(), 1)
}

func TestJanitorHumanSeesDocuments(t *testing.T) {
	dec := &mockDecider{}
	w := newTestWorld(t, 4, dec)
	settle(t, w, 0, "Jan", models.Human, NewJanitorStrategy())
	settle(t, w, 2, "Tim", models.Bot, NewKillerStrategy())

	dec.On("ChooseTarget", mock.Anything, []int{2}).Return(2, nil)
	dec.On("Inform", mock.MatchedBy(func(msg string) bool {
		return strings.Contains(msg, "Killer papers of Tim")
	})).Return().Once()

	NewJanitorStrategy().PerformAction(0, true, w, w.History)
	dec.AssertExpectations(t)
}

func TestOldWomanVisits(t *testing.T) {
	w := newTestWorld(t, 4, nil)
	oldWoman := NewOldWomanStrategy()
	visitor := settle(t, w, 0, "Olga", models.Bot, oldWoman)
	settle(t, w, 3, "Hugo", models.Bot, NewProfessorStrategy())

	oldWoman.PerformAction(0, false, w, w.History)

	assert.Equal(t, 3, visitor.View().CurrentApartment)
	apt, _ := w.Hotel.Apartment(3)
	assert.Equal(t, []int{0}, apt.Guests)
	assert.True(t, w.History.HasVisited(0, 3))
}

func TestProfessorOnlyLeavesATrace(t *testing.T) {
	w := newTestWorld(t, 4, nil)
	professor := NewProfessorStrategy()
	settle(t, w, 0, "Prof", models.Bot, professor)
	student := settle(t, w, 1, "Stu", models.Bot, NewDoctorStrategy())
	before := student.View()

	professor.PerformAction(0, false, w, w.History)

	assert.Equal(t, before, student.View())
	assert.Len(t, actionsOf(w.History, models.ActionLecture), 1)
}

func TestPoliceClearsSingleGoodDocument(t *testing.T) {
	w := newTestWorld(t, 4, nil)
	police := NewPoliceStrategy()
	settle(t, w, 0, "Cop", models.Bot, police)
	settle(t, w, 1, "Doc", models.Bot, NewDoctorStrategy())

	police.PerformAction(0, false, w, w.History)

	assert.Equal(t, 0, w.Investigations.Len())
	assert.Len(t, actionsOf(w.History, models.ActionInvestigate), 1)
}

func TestPoliceSuspectsKillerDocument(t *testing.T) {
	w := newTestWorld(t, 4, nil)
	police := NewPoliceStrategy()
	settle(t, w, 0, "Cop", models.Bot, police)
	settle(t, w, 1, "Kay", models.Bot, NewKillerStrategy())

	w.Investigations.Enqueue(models.Suspicion{From: 3, Suspected: 1, Description: "old", ForVotes: 2})
	police.PerformAction(0, false, w, w.History)

	require.Equal(t, 1, w.Investigations.Len())
	pending, ok := w.Investigations.Get(1)
	require.True(t, ok)
	assert.Equal(t, 0, pending.From)
	assert.Equal(t, 0, pending.ForVotes)
	assert.NotEqual(t, "old", pending.Description)
}

func TestPoliceSuspectsManyDocuments(t *testing.T) {
	w := newTestWorld(t, 4, nil)
	police := NewPoliceStrategy()
	settle(t, w, 0, "Cop", models.Bot, police)
	target := settle(t, w, 1, "Doc", models.Bot, NewDoctorStrategy())
	target.Documents = append(target.Documents, models.Document{Role: models.Judge, IssuedTo: "Ann"})

	police.PerformAction(0, false, w, w.History)
	assert.Equal(t, 1, w.Investigations.Len())
}

func TestPoliceEscalation(t *testing.T) {
	t.Run("repeated uncorroborated", func(t *testing.T) {
		w := newTestWorld(t, 4, nil)
		police := NewPoliceStrategy()
		settle(t, w, 0, "Cop", models.Bot, police)
		settle(t, w, 1, "Doc", models.Bot, NewDoctorStrategy())

		w.Investigations.Enqueue(models.Suspicion{From: 2, Suspected: 1})
		police.PerformAction(0, false, w, w.History)
		pending, _ := w.Investigations.Get(1)
		assert.Equal(t, 2, pending.From, "first visit does not escalate")

		police.PerformAction(0, false, w, w.History)
		pending, _ = w.Investigations.Get(1)
		assert.Equal(t, 0, pending.From)
	})

	t.Run("corroborated suspicion is left alone", func(t *testing.T) {
		w := newTestWorld(t, 4, nil)
		police := NewPoliceStrategy()
		settle(t, w, 0, "Cop", models.Bot, police)
		settle(t, w, 1, "Doc", models.Bot, NewDoctorStrategy())

		w.Investigations.Enqueue(models.Suspicion{From: 2, Suspected: 1, ForVotes: 1})
		w.History.AddAction(0, models.ActionInvestigate, 1)
		police.PerformAction(0, false, w, w.History)
		pending, _ := w.Investigations.Get(1)
		assert.Equal(t, 2, pending.From)
	})

	t.Run("credible source", func(t *testing.T) {
		w := newTestWorld(t, 4, nil)
		police := NewPoliceStrategy()
		settle(t, w, 0, "Cop", models.Bot, police)
		settle(t, w, 1, "Doc", models.Bot, NewDoctorStrategy())

		w.CredibleSources = []int{3}
		w.Investigations.Enqueue(models.Suspicion{From: 3, Suspected: 1})
		police.PerformAction(0, false, w, w.History)
		pending, _ := w.Investigations.Get(1)
		assert.Equal(t, 0, pending.From)
		assert.Contains(t, pending.Description, "credible")
	})
}

func TestJudgeVotes(t *testing.T) {
	w := newTestWorld(t, 4, nil)
	judge := NewJudgeStrategy()
	settle(t, w, 0, "Jude", models.Bot, judge)

	judge.PerformAction(0, false, w, w.History)
	assert.Empty(t, w.History.Actions())

	w.Investigations.Enqueue(models.Suspicion{From: 1, Suspected: 2})
	w.Investigations.Enqueue(models.Suspicion{From: 1, Suspected: 3})

	w.Rules.JudgeVoteFor = 1
	judge.PerformAction(0, false, w, w.History)
	w.Rules.JudgeVoteFor = 0
	judge.PerformAction(0, false, w, w.History)

	for _, target := range []int{2, 3} {
		pending, ok := w.Investigations.Get(target)
		require.True(t, ok)
		assert.Equal(t, 1, pending.ForVotes)
		assert.Equal(t, 1, pending.AgainstVotes)
	}
	assert.Len(t, actionsOf(w.History, models.ActionJudge), 4)
}

func TestJudgeHumanConfirms(t *testing.T) {
	dec := &mockDecider{}
	w := newTestWorld(t, 4, dec)
	settle(t, w, 0, "Jude", models.Human, NewJudgeStrategy())
	w.Investigations.Enqueue(models.Suspicion{From: 1, Suspected: 2, Description: "Apartment 2 holds Killer papers of Kay"})

	dec.On("Confirm", mock.MatchedBy(func(p string) bool { return strings.HasPrefix(p, "Apartment 2") })).Return(true, nil).Once()

	NewJudgeStrategy().PerformAction(0, true, w, w.History)

	pending, _ := w.Investigations.Get(2)
	assert.Equal(t, 1, pending.ForVotes)
	dec.AssertExpectations(t)
}

func TestResolveSuspicionsMajority(t *testing.T) {
	w := newTestWorld(t, 4, nil)
	suspect := settle(t, w, 1, "Kay", models.Bot, NewKillerStrategy())
	settle(t, w, 2, "Doc", models.Bot, NewDoctorStrategy())

	w.Investigations.Enqueue(models.Suspicion{Suspected: 1, ForVotes: 2, AgainstVotes: 1})
	w.Investigations.Enqueue(models.Suspicion{Suspected: 2, ForVotes: 0, AgainstVotes: 1})
	w.Investigations.Enqueue(models.Suspicion{Suspected: 3})

	resolveSuspicions(w)
	assert.Equal(t, 3, w.Investigations.Len(), "none policy keeps every tally")

	w.Rules.JudgeResolution = models.ResolutionMajority
	resolveSuspicions(w)

	assert.Equal(t, models.Arrested, suspect.View().SuperStatus)
	assert.Equal(t, []int{3}, w.Investigations.Targets())
}

func TestSwindlerConservesGoods(t *testing.T) {
	modes := []models.SwindlerMode{
		models.SwindlerInnocentLook,
		models.SwindlerBadGuy,
		models.SwindlerGoodGuy,
		models.SwindlerCollector,
		models.SwindlerRandom,
	}
	for _, mode := range modes {
		t.Run(string(mode), func(t *testing.T) {
			w := newTestWorld(t, 4, nil)
			swindler := NewSwindlerStrategy(mode)
			self := settle(t, w, 0, "Sly", models.Bot, swindler)
			target := settle(t, w, 1, "Kay", models.Bot, NewKillerStrategy())
			target.Balance = 40

			swindler.PerformAction(0, false, w, w.History)

			docs := len(self.DocumentsCopy()) + len(target.DocumentsCopy())
			money := self.View().Balance + target.View().Balance
			assert.Equal(t, 2, docs)
			assert.InDelta(t, 140.0, money, 1e-9)
			assert.Len(t, actionsOf(w.History, models.ActionSwindle), 1)
		})
	}
}

func TestSwindlerModes(t *testing.T) {
	setup := func(t *testing.T, mode models.SwindlerMode) (*World, *Resident, *Resident) {
		w := newTestWorld(t, 4, nil)
		swindler := NewSwindlerStrategy(mode)
		self := settle(t, w, 0, "Sly", models.Bot, swindler)
		target := settle(t, w, 1, "Kay", models.Bot, NewKillerStrategy())
		swindler.PerformAction(0, false, w, w.History)
		return w, self, target
	}

	t.Run("collector keeps everything", func(t *testing.T) {
		_, self, target := setup(t, models.SwindlerCollector)
		assert.Len(t, self.DocumentsCopy(), 2)
		assert.Empty(t, target.DocumentsCopy())
		assert.Equal(t, 200.0, self.View().Balance)
	})

	t.Run("bad guy dumps bad papers", func(t *testing.T) {
		_, self, target := setup(t, models.SwindlerBadGuy)
		assert.Empty(t, self.DocumentsCopy())
		assert.Len(t, target.DocumentsCopy(), 2)
		assert.Equal(t, 0.0, target.View().Balance)
	})

	t.Run("good guy reports the killer", func(t *testing.T) {
		w, self, target := setup(t, models.SwindlerGoodGuy)
		assert.Equal(t, models.Swindler, self.DocumentsCopy()[0].Role)
		assert.Equal(t, models.Killer, target.DocumentsCopy()[0].Role)
		pending, ok := w.Investigations.Get(1)
		require.True(t, ok)
		assert.Equal(t, 0, pending.From)
	})

	t.Run("innocent look keeps one clean paper", func(t *testing.T) {
		_, self, target := setup(t, models.SwindlerInnocentLook)
		assert.Empty(t, self.DocumentsCopy())
		assert.Len(t, target.DocumentsCopy(), 2)
		assert.Equal(t, 100.0, self.View().Balance)
	})
}

func TestSwindlerHumanChooses(t *testing.T) {
	dec := &mockDecider{}
	w := newTestWorld(t, 4, dec)
	swindler := NewSwindlerStrategy(models.SwindlerCollector)
	self := settle(t, w, 0, "Sly", models.Human, swindler)
	target := settle(t, w, 1, "Kay", models.Bot, NewKillerStrategy())

	dec.On("ChooseTarget", mock.Anything, []int{1}).Return(1, nil)
	dec.On("Confirm", "Keep Swindler papers of Sly?").Return(false, nil)
	dec.On("Confirm", "Keep Killer papers of Kay?").Return(true, nil)
	dec.On("ChooseAction", mock.Anything, swindlerMoneyOptions).Return(1, nil)
	dec.On("Confirm", "Apartment 1 carries killer papers. Report it?").Return(true, nil)

	swindler.PerformAction(0, true, w, w.History)

	assert.Equal(t, []models.Document{{Role: models.Killer, IssuedTo: "Kay"}}, self.DocumentsCopy())
	assert.Equal(t, []models.Document{{Role: models.Swindler, IssuedTo: "Sly"}}, target.DocumentsCopy())
	assert.Equal(t, 100.0, self.View().Balance)
	assert.Equal(t, 100.0, target.View().Balance)
	assert.Equal(t, 1, w.Investigations.Len())
	dec.AssertExpectations(t)
}

func TestAIPlayerPersonalities(t *testing.T) {
	w := newTestWorld(t, 4, nil)
	settle(t, w, 0, "Bot", models.Bot, NewProfessorStrategy())
	settle(t, w, 1, "A", models.Bot, NewProfessorStrategy())
	rich := settle(t, w, 2, "B", models.Bot, NewProfessorStrategy())
	rich.Documents = append(rich.Documents, models.Document{Role: models.Judge, IssuedTo: "X"})

	aggressive := NewAIPlayer(0, models.PersonalityAggressive, w)
	for i := 0; i < 10; i++ {
		assert.Equal(t, 2, aggressive.SelectTarget([]int{1, 2}))
	}

	w.History.AddAction(0, models.ActionLecture, 1)
	cautious := NewAIPlayer(0, models.PersonalityCautious, w)
	for i := 0; i < 10; i++ {
		assert.Equal(t, 2, cautious.SelectTarget([]int{1, 2}))
	}

	w.History.AddAction(0, models.ActionLecture, 2)
	assert.Contains(t, []int{1, 2}, cautious.SelectTarget([]int{1, 2}))
}

func TestSwindlerGoodGuyReportsItsOwnKillerPapers(t *testing.T) {
	w := newTestWorld(t, 4, nil)
	swindler := NewSwindlerStrategy(models.SwindlerGoodGuy)
	self := settle(t, w, 0, "Sly", models.Bot, swindler)
	settle(t, w, 1, "Doc", models.Bot, NewDoctorStrategy())
	self.Documents = append(self.Documents, models.Document{Role: models.Killer, IssuedTo: "Kay"})

	swindler.PerformAction(0, false, w, w.History)

	assert.Equal(t, []int{0}, w.Investigations.Targets())
	pending, _ := w.Investigations.Get(0)
	assert.Equal(t, 0, pending.From)
	assert.Len(t, self.DocumentsCopy(), 2)
}

func TestKillerHumanWithoutTargetIsNotAsked(t *testing.T) {
	dec := &mockDecider{}
	w := newTestWorld(t, 4, dec)
	killer := NewKillerStrategy()
	settle(t, w, 0, "Kay", models.Human, killer)

	killer.PerformAction(0, true, w, w.History)

	dec.AssertNotCalled(t, "ChooseAction", mock.Anything, mock.Anything)
	dec.AssertNotCalled(t, "ChooseTarget", mock.Anything, mock.Anything)
	assert.Empty(t, w.History.Actions())
}
